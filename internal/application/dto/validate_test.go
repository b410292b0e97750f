package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
)

func TestValidate_CampoRequeridoUsaNombreJSON(t *testing.T) {
	err := dto.Validate(&dto.RegisterAssetRequest{SerialNo: "SN1"})
	require.ErrorIs(t, err, domain.ErrMissingField)
	assert.Contains(t, err.Error(), "asset_code")
}

func TestValidate_CampoAnidado(t *testing.T) {
	err := dto.Validate(&dto.CreateIssueRequest{
		AssetCode: "GF010",
		Employee:  dto.EmployeeDTO{Name: "Ana"},
	})
	require.ErrorIs(t, err, domain.ErrMissingField)
	assert.Contains(t, err.Error(), "employee.emp_code")
}

func TestValidate_ReglaDeFormato(t *testing.T) {
	err := dto.Validate(&dto.CreateIssueRequest{
		AssetCode: "GF010",
		Employee:  dto.EmployeeDTO{Name: "Ana", Code: "E1", Email: "no-es-email"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrMissingField)
}

func TestValidate_RequestValido(t *testing.T) {
	assert.NoError(t, dto.Validate(&dto.RegisterAssetRequest{AssetCode: "GF100", SerialNo: "SN100"}))
}

func TestDate_JSON(t *testing.T) {
	var in struct {
		D *dto.Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2025-03-14"}`), &in))
	require.NotNil(t, in.D)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), in.D.Time)

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-03-14"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"d":"2025-03-14T10:00:00Z"}`), &in))
	assert.Equal(t, 14, in.D.Day())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"14/03/2025"}`), &in))
}
