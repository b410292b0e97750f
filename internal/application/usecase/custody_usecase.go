package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// CustodyUseCase consultas de entregas, traspasos y bajas.
type CustodyUseCase struct {
	issues    repository.IssueRepository
	transfers repository.TransferRepository
	garbage   repository.GarbageRepository
}

// NewCustodyUseCase construye el caso de uso.
func NewCustodyUseCase(issues repository.IssueRepository, transfers repository.TransferRepository, garbage repository.GarbageRepository) *CustodyUseCase {
	return &CustodyUseCase{issues: issues, transfers: transfers, garbage: garbage}
}

// ActiveIssues entregas sin devolver, más recientes primero.
func (uc *CustodyUseCase) ActiveIssues(ctx context.Context, page dto.PageRequest) (*dto.IssueListResponse, error) {
	page.DefaultPage()
	list, err := uc.issues.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.issues.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.IssueListResponse{
		Items: dto.FromIssues(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetIssue entrega por ID (activa o cerrada).
func (uc *CustodyUseCase) GetIssue(ctx context.Context, id string) (*dto.IssueResponse, error) {
	issue, err := uc.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
	}
	out := dto.FromIssue(issue)
	return &out, nil
}

// Transfers traspasos, opcionalmente filtrados por estado (Pending, Approved, Rejected, COMPLETED).
func (uc *CustodyUseCase) Transfers(ctx context.Context, status string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	st := entity.TransferStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidStatus, status)
	}
	list, err := uc.transfers.List(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.TransferListResponse{
		Items: dto.FromTransfers(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Garbage bajas más recientes primero.
func (uc *CustodyUseCase) Garbage(ctx context.Context, page dto.PageRequest) (*dto.GarbageListResponse, error) {
	page.DefaultPage()
	list, err := uc.garbage.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.GarbageListResponse{
		Items: dto.FromGarbageList(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
