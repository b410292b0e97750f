package entity

import "time"

// Software licencia de software con cupos (seats).
// Invariante: 0 <= SeatsUsed <= SeatsTotal.
type Software struct {
	ID         string
	Name       string
	Vendor     string
	Version    string
	LicenseKey string
	SeatsTotal int
	SeatsUsed  int
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SeatsAvailable cupos libres.
func (s *Software) SeatsAvailable() int {
	return s.SeatsTotal - s.SeatsUsed
}

// SoftwareAssignment vincula una licencia con un activo.
type SoftwareAssignment struct {
	ID         string
	SoftwareID string
	AssetID    string
	AssetCode  string
	AssignedBy string
	CreatedAt  time.Time
}
