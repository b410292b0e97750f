package dto

import "time"

// CreateSoftwareRequest body para POST /api/software.
type CreateSoftwareRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Vendor     string `json:"vendor" validate:"max=200"`
	Version    string `json:"version" validate:"max=64"`
	LicenseKey string `json:"license_key" validate:"max=500"`
	SeatsTotal int    `json:"seats_total" validate:"min=1,max=100000"`
	ExpiresAt  *Date  `json:"expires_at,omitempty"`
}

// AssignSoftwareRequest body para POST /api/software/:id/assignments.
type AssignSoftwareRequest struct {
	AssetCode string `json:"asset_code" validate:"required,max=64"`
}

// SoftwareResponse salida de una licencia.
type SoftwareResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Vendor         string    `json:"vendor"`
	Version        string    `json:"version"`
	LicenseKey     string    `json:"license_key,omitempty"`
	SeatsTotal     int       `json:"seats_total"`
	SeatsUsed      int       `json:"seats_used"`
	SeatsAvailable int       `json:"seats_available"`
	ExpiresAt      *Date     `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SoftwareAssignmentResponse salida de una asignación.
type SoftwareAssignmentResponse struct {
	ID         string    `json:"id"`
	SoftwareID string    `json:"software_id"`
	AssetID    string    `json:"asset_id"`
	AssetCode  string    `json:"asset_code"`
	AssignedBy string    `json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// SoftwareDetailResponse licencia con sus asignaciones.
type SoftwareDetailResponse struct {
	SoftwareResponse
	Assignments []SoftwareAssignmentResponse `json:"assignments"`
}
