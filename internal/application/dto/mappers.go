package dto

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// FromAsset convierte la entidad a su salida HTTP.
func FromAsset(a *entity.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.ID,
		AssetCode:     a.AssetCode,
		Make:          a.Make,
		Model:         a.Model,
		SerialNo:      a.SerialNo,
		PONo:          a.PONo,
		InvoiceNo:     a.InvoiceNo,
		InvoiceDate:   DateFrom(a.InvoiceDate),
		Amount:        a.Amount,
		Vendor:        a.Vendor,
		WarrantyYears: a.WarrantyYears,
		WarrantyStart: DateFrom(a.WarrantyStart),
		WarrantyEnd:   DateFrom(a.WarrantyEnd),
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromAssets convierte una lista (nunca devuelve nil, para serializar [] en vez de null).
func FromAssets(list []*entity.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAsset(a))
	}
	return out
}

// FromEmployee convierte los datos del custodio.
func FromEmployee(e entity.Employee) EmployeeDTO {
	return EmployeeDTO{
		Name:        e.Name,
		Code:        e.Code,
		Department:  e.Department,
		Division:    e.Division,
		Designation: e.Designation,
		Location:    e.Location,
		Phone:       e.Phone,
		HOD:         e.HOD,
		Email:       e.Email,
	}
}

// ToEmployee convierte la entrada del custodio a entidad.
func (e EmployeeDTO) ToEmployee() entity.Employee {
	return entity.Employee{
		Name:        e.Name,
		Code:        e.Code,
		Department:  e.Department,
		Division:    e.Division,
		Designation: e.Designation,
		Location:    e.Location,
		Phone:       e.Phone,
		HOD:         e.HOD,
		Email:       e.Email,
	}
}

// FromIssue convierte una entrega.
func FromIssue(i *entity.Issue) IssueResponse {
	software := i.InstalledSoftware
	if software == nil {
		software = []string{}
	}
	return IssueResponse{
		ID:                i.ID,
		AssetID:           i.AssetID,
		AssetCode:         i.AssetCode,
		Employee:          FromEmployee(i.Holder),
		AssetType:         i.AssetType,
		MakeModel:         i.MakeModel,
		SerialNo:          i.SerialNo,
		IPAddress:         i.IPAddress,
		OperatingSystem:   i.OperatingSystem,
		InstalledSoftware: software,
		Remarks:           i.Remarks,
		Terms:             i.Terms,
		IssuedBy:          i.IssuedBy,
		Active:            i.Active(),
		ReturnedAt:        i.ReturnedAt,
		ReturnedBy:        i.ReturnedBy,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// FromIssues convierte una lista de entregas.
func FromIssues(list []*entity.Issue) []IssueResponse {
	out := make([]IssueResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromIssue(i))
	}
	return out
}

// FromTransfer convierte un traspaso.
func FromTransfer(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:           t.ID,
		AssetID:      t.AssetID,
		AssetCode:    t.AssetCode,
		FromEmpCode:  t.FromEmpCode,
		ToEmpCode:    t.ToEmpCode,
		To:           FromEmployee(t.ToEmployee),
		TransferDate: Date{Time: t.TransferDate},
		Status:       string(t.Status),
		Remarks:      t.Remarks,
		RequestedBy:  t.RequestedBy,
		DecidedBy:    t.DecidedBy,
		DecidedAt:    t.DecidedAt,
		CreatedAt:    t.CreatedAt,
	}
}

// FromTransfers convierte una lista de traspasos.
func FromTransfers(list []*entity.Transfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTransfer(t))
	}
	return out
}

// FromGarbage convierte una baja.
func FromGarbage(g *entity.Garbage) GarbageResponse {
	return GarbageResponse{
		ID:           g.ID,
		AssetID:      g.AssetID,
		AssetCode:    g.AssetCode,
		Reason:       g.Reason,
		DisposedDate: Date{Time: g.DisposedDate},
		DisposedBy:   g.DisposedBy,
		CreatedAt:    g.CreatedAt,
	}
}

// FromGarbageList convierte una lista de bajas.
func FromGarbageList(list []*entity.Garbage) []GarbageResponse {
	out := make([]GarbageResponse, 0, len(list))
	for _, g := range list {
		out = append(out, FromGarbage(g))
	}
	return out
}

// FromHistory convierte una lista de eventos.
func FromHistory(list []*entity.HistoryEvent) []HistoryEventResponse {
	out := make([]HistoryEventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, HistoryEventResponse{
			ID:          e.ID,
			EventType:   string(e.EventType),
			AssetCode:   e.AssetCode,
			AssetID:     e.AssetID,
			Description: e.Description,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

// FromSoftware convierte una licencia.
func FromSoftware(s *entity.Software) SoftwareResponse {
	return SoftwareResponse{
		ID:             s.ID,
		Name:           s.Name,
		Vendor:         s.Vendor,
		Version:        s.Version,
		LicenseKey:     s.LicenseKey,
		SeatsTotal:     s.SeatsTotal,
		SeatsUsed:      s.SeatsUsed,
		SeatsAvailable: s.SeatsAvailable(),
		ExpiresAt:      DateFrom(s.ExpiresAt),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromAssignment convierte una asignación de licencia.
func FromAssignment(a *entity.SoftwareAssignment) SoftwareAssignmentResponse {
	return SoftwareAssignmentResponse{
		ID:         a.ID,
		SoftwareID: a.SoftwareID,
		AssetID:    a.AssetID,
		AssetCode:  a.AssetCode,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// FromUser convierte un usuario (sin password).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
