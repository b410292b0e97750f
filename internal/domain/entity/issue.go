package entity

import "time"

// Employee datos del custodio de un activo.
type Employee struct {
	Name        string
	Code        string
	Department  string
	Division    string
	Designation string
	Location    string
	Phone       string
	HOD         string // jefe de departamento
	Email       string
}

// Issue representa la entrega de un activo a un empleado.
// Una entrega está activa mientras ReturnedAt sea nil; a lo sumo una activa por activo.
type Issue struct {
	ID                string
	AssetID           string
	AssetCode         string
	Holder            Employee
	AssetType         string
	MakeModel         string
	SerialNo          string
	IPAddress         string
	OperatingSystem   string
	InstalledSoftware []string
	Remarks           string
	Terms             string
	IssuedBy          string
	ReturnedAt        *time.Time
	ReturnedBy        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Active indica si la entrega sigue vigente (no devuelta).
func (i *Issue) Active() bool {
	return i.ReturnedAt == nil
}
