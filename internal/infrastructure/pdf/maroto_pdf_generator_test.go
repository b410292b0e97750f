package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/infrastructure/pdf"
)

func TestGenerateIssueForm(t *testing.T) {
	end := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	asset := &entity.Asset{ID: "a-1", AssetCode: "LAP-001", Make: "Dell", Model: "Latitude", SerialNo: "SN1", WarrantyEnd: &end}
	issue := &entity.Issue{
		ID:                "6f1c2b7e-0000-0000-0000-000000000000",
		AssetID:           "a-1",
		AssetCode:         "LAP-001",
		Holder:            entity.Employee{Name: "Ana Pérez", Code: "E100", Department: "Finanzas"},
		InstalledSoftware: []string{"Office", "Antivirus"},
		Remarks:           "Incluye cargador",
		CreatedAt:         time.Now(),
	}

	out, err := pdf.NewMarotoIssueFormGenerator("Empresa S.A.S.").GenerateIssueForm(context.Background(), issue, asset)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}
