package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Tipos de reporte CSV.
const (
	ReportAssets    = "assets"
	ReportIssued    = "issued"
	ReportGarbage   = "garbage"
	ReportTransfers = "transfers"
)

const dateLayout = "2006-01-02"

// ExportCSV devuelve el reporte reportType como CSV (UTF-8, encabezado en la primera fila).
// Refleja el estado actual de la BD; no pagina. ErrInvalidInput si el tipo no existe.
func (s *Service) ExportCSV(ctx context.Context, reportType string) (data []byte, filename string, err error) {
	reportType = strings.ToLower(strings.TrimSpace(reportType))

	var rows [][]string
	switch reportType {
	case ReportAssets:
		rows, err = s.assetRows(ctx)
	case ReportIssued:
		rows, err = s.issuedRows(ctx)
	case ReportGarbage:
		rows, err = s.garbageRows(ctx)
	case ReportTransfers:
		rows, err = s.transferRows(ctx)
	default:
		return nil, "", fmt.Errorf("%w: tipo de reporte %q (assets, issued, garbage, transfers)", domain.ErrInvalidInput, reportType)
	}
	if err != nil {
		return nil, "", fmt.Errorf("csv %s: %w", reportType, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, "", fmt.Errorf("csv %s: %w", reportType, err)
	}
	filename = fmt.Sprintf("%s_%s.csv", reportType, s.now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func (s *Service) assetRows(ctx context.Context) ([][]string, error) {
	list, err := s.assets.List(ctx, repository.AssetFilter{}, 0, 0)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{
		"asset_code", "make", "model", "serial_no", "po_no", "invoice_no", "invoice_date",
		"amount", "vendor", "warranty_years", "warranty_start", "warranty_end", "status", "created_at",
	}}
	for _, a := range list {
		rows = append(rows, []string{
			a.AssetCode, a.Make, a.Model, a.SerialNo, a.PONo, a.InvoiceNo, date(a.InvoiceDate),
			a.Amount.StringFixed(2), a.Vendor, strconv.Itoa(a.WarrantyYears),
			date(a.WarrantyStart), date(a.WarrantyEnd), string(a.Status), a.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *Service) issuedRows(ctx context.Context) ([][]string, error) {
	list, err := s.issues.ListActive(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{
		"asset_code", "employee_name", "emp_code", "department", "division", "designation",
		"location", "phone", "hod", "email", "asset_type", "make_model", "serial_no",
		"ip_address", "os", "software", "remarks", "issued_by", "issued_at",
	}}
	for _, i := range list {
		h := i.Holder
		rows = append(rows, []string{
			i.AssetCode, h.Name, h.Code, h.Department, h.Division, h.Designation,
			h.Location, h.Phone, h.HOD, h.Email, i.AssetType, i.MakeModel, i.SerialNo,
			i.IPAddress, i.OperatingSystem, strings.Join(i.InstalledSoftware, "; "), i.Remarks,
			i.IssuedBy, i.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *Service) garbageRows(ctx context.Context) ([][]string, error) {
	list, err := s.garbage.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"asset_code", "reason", "disposed_date", "disposed_by"}}
	for _, g := range list {
		rows = append(rows, []string{g.AssetCode, g.Reason, g.DisposedDate.Format(dateLayout), g.DisposedBy})
	}
	return rows, nil
}

func (s *Service) transferRows(ctx context.Context) ([][]string, error) {
	list, err := s.transfers.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{
		"asset_code", "from_emp_code", "to_emp_code", "to_employee_name", "to_department",
		"transfer_date", "status", "remarks", "requested_by", "decided_by",
	}}
	for _, t := range list {
		rows = append(rows, []string{
			t.AssetCode, t.FromEmpCode, t.ToEmpCode, t.ToEmployee.Name, t.ToEmployee.Department,
			t.TransferDate.Format(dateLayout), string(t.Status), t.Remarks, t.RequestedBy, t.DecidedBy,
		})
	}
	return rows, nil
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
