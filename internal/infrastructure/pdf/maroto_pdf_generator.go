// Package pdf genera el acta de entrega de un activo de TI.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + código del activo │ N° entrega + fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: nombre, código, área, cargo, ubicación, contacto  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: tipo, marca/modelo, serie, IP, SO, garantía         │
//	│  SOFTWARE INSTALADO                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES + TÉRMINOS                                    │
//	│  FIRMAS: entrega (TI) │ recibe (empleado) │ jefe inmediato   │
//	│  QR con el código del activo                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Activos-api/internal/application/reports"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

var _ reports.IssueFormGenerator = (*MarotoIssueFormGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const defaultTerms = "El empleado recibe el equipo en buen estado y se compromete a usarlo exclusivamente " +
	"para labores de la empresa, a no instalar software sin licencia y a devolverlo al área de TI " +
	"al finalizar su vinculación o cuando le sea solicitado."

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoIssueFormGenerator implementa reports.IssueFormGenerator usando Maroto v2.
type MarotoIssueFormGenerator struct {
	company string
}

// NewMarotoIssueFormGenerator construye el generador. company se imprime en el encabezado.
func NewMarotoIssueFormGenerator(company string) *MarotoIssueFormGenerator {
	return &MarotoIssueFormGenerator{company: company}
}

// GenerateIssueForm genera el PDF y devuelve sus bytes.
func (g *MarotoIssueFormGenerator) GenerateIssueForm(_ context.Context, issue *entity.Issue, asset *entity.Asset) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de entrega de activo "+issue.AssetCode, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, issue))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("DATOS DEL EMPLEADO"))
	m.AddRows(employeeRows(issue.Holder)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DATOS DEL EQUIPO"))
	m.AddRows(equipmentRows(issue, asset)...)
	m.AddRows(softwareRows(issue.InstalledSoftware)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(remarksRows(issue)...)
	m.AddRows(line.NewRow(12))
	m.AddRows(signatureRow())
	m.AddRows(qrRow(issue))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, issue *entity.Issue) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Departamento de TI"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ACTA DE ENTREGA DE ACTIVO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(issue.AssetCode, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Entrega: "+shortID(issue.ID), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha: "+issue.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// field par etiqueta/valor que ocupa size columnas.
func field(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 0.5}),
		text.New(nonEmpty(value, "—"), props.Text{Size: 9, Top: 4}),
	)
}

func employeeRows(h entity.Employee) []core.Row {
	return []core.Row{
		row.New(10).Add(
			field(6, "Nombre", h.Name),
			field(3, "Código", h.Code),
			field(3, "Cargo", h.Designation),
		),
		row.New(10).Add(
			field(4, "Departamento", h.Department),
			field(4, "División", h.Division),
			field(4, "Ubicación", h.Location),
		),
		row.New(10).Add(
			field(4, "Teléfono", h.Phone),
			field(4, "Email", h.Email),
			field(4, "Jefe inmediato", h.HOD),
		),
	}
}

func equipmentRows(issue *entity.Issue, asset *entity.Asset) []core.Row {
	warranty := "—"
	if asset.WarrantyEnd != nil {
		warranty = "hasta " + asset.WarrantyEnd.Format("02/01/2006")
	}
	return []core.Row{
		row.New(10).Add(
			field(3, "Tipo", issue.AssetType),
			field(5, "Marca / Modelo", nonEmpty(issue.MakeModel, strings.TrimSpace(asset.Make+" "+asset.Model))),
			field(4, "Serie", nonEmpty(issue.SerialNo, asset.SerialNo)),
		),
		row.New(10).Add(
			field(3, "Dirección IP", issue.IPAddress),
			field(5, "Sistema operativo", issue.OperatingSystem),
			field(4, "Garantía", warranty),
		),
	}
}

func softwareRows(software []string) []core.Row {
	if len(software) == 0 {
		return nil
	}
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("Software instalado", props.Text{Size: 7, Color: colorGray, Top: 0.5}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(strings.Join(software, " · "), props.Text{Size: 9, Top: 1}),
		)),
	}
}

func remarksRows(issue *entity.Issue) []core.Row {
	rows := []core.Row{}
	if issue.Remarks != "" {
		rows = append(rows,
			sectionTitle("OBSERVACIONES"),
			row.New(10).Add(col.New(12).Add(text.New(issue.Remarks, props.Text{Size: 8.5, Top: 1}))),
		)
	}
	rows = append(rows,
		sectionTitle("TÉRMINOS Y CONDICIONES"),
		row.New(16).Add(col.New(12).Add(
			text.New(nonEmpty(issue.Terms, defaultTerms), props.Text{Size: 7.5, Color: colorGray, Top: 1}),
		)),
	)
	return rows
}

func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(4).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(14).Add(
		sig("Entrega (TI)"),
		sig("Recibe (empleado)"),
		sig("Jefe inmediato"),
	)
}

func qrRow(issue *entity.Issue) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(issue.AssetCode, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para consultar el historial del activo en el inventario de TI.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
