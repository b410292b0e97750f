// Package reports genera las exportaciones de solo lectura: CSV por tipo de reporte y
// el formulario PDF de entrega de un activo.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// IssueFormGenerator genera el PDF del acta de entrega.
type IssueFormGenerator interface {
	GenerateIssueForm(ctx context.Context, issue *entity.Issue, asset *entity.Asset) ([]byte, error)
}

// Service casos de uso de reportes.
type Service struct {
	assets    repository.AssetRepository
	issues    repository.IssueRepository
	transfers repository.TransferRepository
	garbage   repository.GarbageRepository
	forms     IssueFormGenerator
	now       func() time.Time
}

// NewService construye el servicio inyectando todas sus dependencias.
func NewService(
	assets repository.AssetRepository,
	issues repository.IssueRepository,
	transfers repository.TransferRepository,
	garbage repository.GarbageRepository,
	forms IssueFormGenerator,
) *Service {
	return &Service{
		assets:    assets,
		issues:    issues,
		transfers: transfers,
		garbage:   garbage,
		forms:     forms,
		now:       time.Now,
	}
}

// IssueFormPDF genera el acta de entrega de una entrega (activa o cerrada).
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la entrega o su activo no existen.
func (s *Service) IssueFormPDF(ctx context.Context, issueID string) (pdfBytes []byte, filename string, err error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener entrega: %w", err)
	}
	if issue == nil {
		return nil, "", fmt.Errorf("%w: entrega %s", domain.ErrNotFound, issueID)
	}
	asset, err := s.assets.GetByID(ctx, issue.AssetID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener activo: %w", err)
	}
	if asset == nil {
		return nil, "", fmt.Errorf("%w: activo %s", domain.ErrNotFound, issue.AssetCode)
	}

	pdfBytes, err = s.forms.GenerateIssueForm(ctx, issue, asset)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("entrega_%s_%s.pdf", issue.AssetCode, issue.Holder.Code)
	return pdfBytes, filename, nil
}
