package dto

import "time"

// EmployeeDTO datos del custodio.
type EmployeeDTO struct {
	Name        string `json:"employee_name" validate:"required,max=200"`
	Code        string `json:"emp_code" validate:"required,max=64"`
	Department  string `json:"department" validate:"max=200"`
	Division    string `json:"division" validate:"max=200"`
	Designation string `json:"designation" validate:"max=200"`
	Location    string `json:"location" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=50"`
	HOD         string `json:"hod" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// CreateIssueRequest body para POST /api/issues.
type CreateIssueRequest struct {
	AssetCode         string      `json:"asset_code" validate:"required,max=64"`
	Employee          EmployeeDTO `json:"employee"`
	AssetType         string      `json:"asset_type" validate:"max=100"`
	MakeModel         string      `json:"make_model" validate:"max=200"`
	SerialNo          string      `json:"serial_no" validate:"max=128"`
	IPAddress         string      `json:"ip_address" validate:"omitempty,ip"`
	OperatingSystem   string      `json:"os" validate:"max=100"`
	InstalledSoftware []string    `json:"software" validate:"max=50,dive,max=100"`
	Remarks           string      `json:"remarks" validate:"max=1000"`
	Terms             string      `json:"terms" validate:"max=4000"`
}

// ReturnIssueRequest body opcional para POST /api/issues/:id/return.
type ReturnIssueRequest struct {
	Remarks string `json:"remarks" validate:"max=1000"`
}

// IssueResponse salida de una entrega.
type IssueResponse struct {
	ID                string      `json:"id"`
	AssetID           string      `json:"asset_id"`
	AssetCode         string      `json:"asset_code"`
	Employee          EmployeeDTO `json:"employee"`
	AssetType         string      `json:"asset_type"`
	MakeModel         string      `json:"make_model"`
	SerialNo          string      `json:"serial_no"`
	IPAddress         string      `json:"ip_address"`
	OperatingSystem   string      `json:"os"`
	InstalledSoftware []string    `json:"software"`
	Remarks           string      `json:"remarks"`
	Terms             string      `json:"terms"`
	IssuedBy          string      `json:"issued_by"`
	Active            bool        `json:"active"`
	ReturnedAt        *time.Time  `json:"returned_at,omitempty"`
	ReturnedBy        string      `json:"returned_by,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// IssueListResponse lista paginada de entregas activas.
type IssueListResponse struct {
	Items []IssueResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
