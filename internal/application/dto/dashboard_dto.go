package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Conteo de activos por estado
	TotalAssets   int `json:"total_assets"`
	InStock       int `json:"in_stock"`
	Issued        int `json:"issued"`
	Garbage       int `json:"garbage"`
	ActiveIssues  int `json:"active_issues"`
	PendingTransf int `json:"pending_transfers"`

	// Garantías que vencen en los próximos WarrantyWindowDays días
	WarrantyWindowDays int             `json:"warranty_window_days"`
	WarrantyExpiring   []AssetResponse `json:"warranty_expiring"`

	// Uso de licencias (solo las que tienen cupos)
	Licenses []LicenseUsageDTO `json:"licenses"`
}

// LicenseUsageDTO utilización de una licencia para el widget del dashboard.
type LicenseUsageDTO struct {
	SoftwareID string  `json:"software_id"`
	Name       string  `json:"name"`
	SeatsTotal int     `json:"seats_total"`
	SeatsUsed  int     `json:"seats_used"`
	UsagePct   float64 `json:"usage_pct"`
}
