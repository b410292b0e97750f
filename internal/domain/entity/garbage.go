package entity

import "time"

// Garbage registro de baja de un activo. Inmutable una vez creado.
type Garbage struct {
	ID           string
	AssetID      string
	AssetCode    string
	Reason       string
	DisposedDate time.Time
	DisposedBy   string
	CreatedAt    time.Time
}
