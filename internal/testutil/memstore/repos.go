package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var (
	_ repository.AssetRepository    = (*AssetRepo)(nil)
	_ repository.IssueRepository    = (*IssueRepo)(nil)
	_ repository.TransferRepository = (*TransferRepo)(nil)
	_ repository.GarbageRepository  = (*GarbageRepo)(nil)
	_ repository.HistoryRepository  = (*HistoryRepo)(nil)
	_ repository.SoftwareRepository = (*SoftwareRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ─── Assets ────────────────────────────────────────────────────────────────

type AssetRepo struct{ base }

func (r *AssetRepo) Create(_ context.Context, a *entity.Asset) error {
	return r.do("assets.create", func(st *state) error {
		for _, row := range st.assets.rows {
			if row.v.AssetCode == a.AssetCode {
				return fmt.Errorf("%w: asset_code %s", domain.ErrDuplicate, a.AssetCode)
			}
		}
		st.assets.put(a.ID, *a)
		return nil
	})
}

func (r *AssetRepo) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.do("assets.get", func(st *state) error {
		if a, ok := st.assets.get(id); ok {
			out = ptr(a)
		}
		return nil
	})
	return out, err
}

func (r *AssetRepo) GetByCode(_ context.Context, code string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.do("assets.get", func(st *state) error {
		for _, row := range st.assets.rows {
			if row.v.AssetCode == code {
				out = ptr(row.v)
			}
		}
		return nil
	})
	return out, err
}

func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *AssetRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Asset, error) {
	return r.GetByCode(ctx, code)
}

func (r *AssetRepo) UpdateStatus(_ context.Context, id string, status entity.AssetStatus, at time.Time) error {
	return r.do("assets.update_status", func(st *state) error {
		a, ok := st.assets.get(id)
		if !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
		}
		a.Status, a.UpdatedAt = status, at
		st.assets.put(id, a)
		return nil
	})
}

func matchAsset(f repository.AssetFilter) func(entity.Asset) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	return func(a entity.Asset) bool {
		if f.Status != "" && a.Status != f.Status {
			return false
		}
		if q == "" {
			return true
		}
		for _, s := range []string{a.AssetCode, a.SerialNo, a.Make, a.Model} {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}
}

func (r *AssetRepo) List(_ context.Context, f repository.AssetFilter, limit, offset int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	err := r.do("assets.list", func(st *state) error {
		out = ptrs(page(st.assets.all(matchAsset(f)), limit, offset))
		return nil
	})
	return out, err
}

func (r *AssetRepo) Count(_ context.Context, f repository.AssetFilter) (int, error) {
	var n int
	err := r.do("assets.count", func(st *state) error {
		n = len(st.assets.all(matchAsset(f)))
		return nil
	})
	return n, err
}

func (r *AssetRepo) CountByStatus(_ context.Context) (map[entity.AssetStatus]int, error) {
	out := map[entity.AssetStatus]int{}
	err := r.do("assets.count", func(st *state) error {
		for _, row := range st.assets.rows {
			out[row.v.Status]++
		}
		return nil
	})
	return out, err
}

func (r *AssetRepo) ListWarrantyExpiring(_ context.Context, from, to time.Time) ([]*entity.Asset, error) {
	var out []*entity.Asset
	err := r.do("assets.list", func(st *state) error {
		list := st.assets.all(func(a entity.Asset) bool {
			return a.Status != entity.AssetStatusGarbage && a.WarrantyEnd != nil &&
				!a.WarrantyEnd.Before(from) && !a.WarrantyEnd.After(to)
		})
		sort.SliceStable(list, func(i, j int) bool { return list[i].WarrantyEnd.Before(*list[j].WarrantyEnd) })
		out = ptrs(list)
		return nil
	})
	return out, err
}

// ─── Issues ────────────────────────────────────────────────────────────────

type IssueRepo struct{ base }

func (r *IssueRepo) Create(_ context.Context, i *entity.Issue) error {
	return r.do("issues.create", func(st *state) error {
		for _, row := range st.issues.rows {
			if row.v.AssetID == i.AssetID && row.v.Active() {
				return fmt.Errorf("%w: %s", domain.ErrAlreadyIssued, i.AssetCode)
			}
		}
		st.issues.put(i.ID, *i)
		return nil
	})
}

func (r *IssueRepo) GetByID(_ context.Context, id string) (*entity.Issue, error) {
	var out *entity.Issue
	err := r.do("issues.get", func(st *state) error {
		if i, ok := st.issues.get(id); ok {
			out = ptr(i)
		}
		return nil
	})
	return out, err
}

func (r *IssueRepo) GetForUpdate(ctx context.Context, id string) (*entity.Issue, error) {
	return r.GetByID(ctx, id)
}

func (r *IssueRepo) GetActiveByAssetID(_ context.Context, assetID string) (*entity.Issue, error) {
	var out *entity.Issue
	err := r.do("issues.get", func(st *state) error {
		for _, row := range st.issues.rows {
			if row.v.AssetID == assetID && row.v.Active() {
				out = ptr(row.v)
			}
		}
		return nil
	})
	return out, err
}

func (r *IssueRepo) UpdateHolder(_ context.Context, id string, holder entity.Employee, at time.Time) error {
	return r.do("issues.update_holder", func(st *state) error {
		i, ok := st.issues.get(id)
		if !ok {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		i.Holder, i.UpdatedAt = holder, at
		st.issues.put(id, i)
		return nil
	})
}

func (r *IssueRepo) Close(_ context.Context, id, returnedBy string, at time.Time) error {
	return r.do("issues.close", func(st *state) error {
		i, ok := st.issues.get(id)
		if !ok {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		i.ReturnedAt, i.ReturnedBy, i.UpdatedAt = &at, returnedBy, at
		st.issues.put(id, i)
		return nil
	})
}

func (r *IssueRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Issue, error) {
	var out []*entity.Issue
	err := r.do("issues.list", func(st *state) error {
		out = ptrs(page(st.issues.all(func(i entity.Issue) bool { return i.Active() }), limit, offset))
		return nil
	})
	return out, err
}

func (r *IssueRepo) ListByAsset(_ context.Context, assetID string) ([]*entity.Issue, error) {
	var out []*entity.Issue
	err := r.do("issues.list", func(st *state) error {
		out = ptrs(st.issues.all(func(i entity.Issue) bool { return i.AssetID == assetID }))
		return nil
	})
	return out, err
}

func (r *IssueRepo) CountActive(_ context.Context) (int, error) {
	var n int
	err := r.do("issues.count", func(st *state) error {
		n = len(st.issues.all(func(i entity.Issue) bool { return i.Active() }))
		return nil
	})
	return n, err
}

// ─── Transfers ─────────────────────────────────────────────────────────────

type TransferRepo struct{ base }

func (r *TransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	return r.do("transfers.create", func(st *state) error {
		if t.Status == entity.TransferStatusPending {
			for _, row := range st.transfers.rows {
				if row.v.AssetID == t.AssetID && row.v.Status == entity.TransferStatusPending {
					return fmt.Errorf("%w: %s tiene una solicitud de traspaso pendiente", domain.ErrConflict, t.AssetCode)
				}
			}
		}
		st.transfers.put(t.ID, *t)
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.do("transfers.get", func(st *state) error {
		if t, ok := st.transfers.get(id); ok {
			out = ptr(t)
		}
		return nil
	})
	return out, err
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) HasPending(_ context.Context, assetID string) (bool, error) {
	var found bool
	err := r.do("transfers.get", func(st *state) error {
		for _, row := range st.transfers.rows {
			if row.v.AssetID == assetID && row.v.Status == entity.TransferStatusPending {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *TransferRepo) UpdateStatus(_ context.Context, id string, status entity.TransferStatus, decidedBy string, at time.Time) error {
	return r.do("transfers.update_status", func(st *state) error {
		t, ok := st.transfers.get(id)
		if !ok {
			return fmt.Errorf("%w: traspaso %s", domain.ErrNotFound, id)
		}
		t.Status, t.DecidedBy, t.DecidedAt = status, decidedBy, &at
		st.transfers.put(id, t)
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	err := r.do("transfers.list", func(st *state) error {
		out = ptrs(page(st.transfers.all(func(t entity.Transfer) bool {
			return status == "" || t.Status == status
		}), limit, offset))
		return nil
	})
	return out, err
}

func (r *TransferRepo) CountByStatus(ctx context.Context, status entity.TransferStatus) (int, error) {
	list, err := r.List(ctx, status, 0, 0)
	return len(list), err
}

// ─── Garbage ───────────────────────────────────────────────────────────────

type GarbageRepo struct{ base }

func (r *GarbageRepo) Create(_ context.Context, g *entity.Garbage) error {
	return r.do("garbage.create", func(st *state) error {
		for _, row := range st.garbage.rows {
			if row.v.AssetID == g.AssetID {
				return fmt.Errorf("%w: %s ya fue dado de baja", domain.ErrDuplicate, g.AssetCode)
			}
		}
		st.garbage.put(g.ID, *g)
		return nil
	})
}

func (r *GarbageRepo) GetByAssetID(_ context.Context, assetID string) (*entity.Garbage, error) {
	var out *entity.Garbage
	err := r.do("garbage.get", func(st *state) error {
		for _, row := range st.garbage.rows {
			if row.v.AssetID == assetID {
				out = ptr(row.v)
			}
		}
		return nil
	})
	return out, err
}

func (r *GarbageRepo) List(_ context.Context, limit, offset int) ([]*entity.Garbage, error) {
	var out []*entity.Garbage
	err := r.do("garbage.list", func(st *state) error {
		out = ptrs(page(st.garbage.all(nil), limit, offset))
		return nil
	})
	return out, err
}

// ─── History ───────────────────────────────────────────────────────────────

type HistoryRepo struct{ base }

func (r *HistoryRepo) Append(_ context.Context, e *entity.HistoryEvent) error {
	return r.do("history.append", func(st *state) error {
		st.history.put(e.ID, *e)
		return nil
	})
}

func (r *HistoryRepo) ListRecent(_ context.Context, limit, offset int) ([]*entity.HistoryEvent, error) {
	var out []*entity.HistoryEvent
	err := r.do("history.list", func(st *state) error {
		out = ptrs(page(st.history.all(nil), limit, offset))
		return nil
	})
	return out, err
}

func (r *HistoryRepo) ListByAssetCode(_ context.Context, code string, limit int) ([]*entity.HistoryEvent, error) {
	var out []*entity.HistoryEvent
	err := r.do("history.list", func(st *state) error {
		out = ptrs(page(st.history.all(func(e entity.HistoryEvent) bool { return e.AssetCode == code }), limit, 0))
		return nil
	})
	return out, err
}

// ─── Software ──────────────────────────────────────────────────────────────

type SoftwareRepo struct{ base }

func (r *SoftwareRepo) Create(_ context.Context, sw *entity.Software) error {
	return r.do("software.create", func(st *state) error {
		st.software.put(sw.ID, *sw)
		return nil
	})
}

func (r *SoftwareRepo) GetByID(_ context.Context, id string) (*entity.Software, error) {
	var out *entity.Software
	err := r.do("software.get", func(st *state) error {
		if sw, ok := st.software.get(id); ok {
			out = ptr(sw)
		}
		return nil
	})
	return out, err
}

func (r *SoftwareRepo) GetForUpdate(ctx context.Context, id string) (*entity.Software, error) {
	return r.GetByID(ctx, id)
}

func (r *SoftwareRepo) List(_ context.Context, limit, offset int) ([]*entity.Software, error) {
	var out []*entity.Software
	err := r.do("software.list", func(st *state) error {
		out = ptrs(page(st.software.all(nil), limit, offset))
		return nil
	})
	return out, err
}

func (r *SoftwareRepo) UpdateSeatsUsed(_ context.Context, id string, used int, at time.Time) error {
	return r.do("software.update_seats", func(st *state) error {
		sw, ok := st.software.get(id)
		if !ok {
			return fmt.Errorf("%w: software %s", domain.ErrNotFound, id)
		}
		sw.SeatsUsed, sw.UpdatedAt = used, at
		st.software.put(id, sw)
		return nil
	})
}

func (r *SoftwareRepo) CreateAssignment(_ context.Context, a *entity.SoftwareAssignment) error {
	return r.do("software.assign", func(st *state) error {
		for _, row := range st.assignments.rows {
			if row.v.SoftwareID == a.SoftwareID && row.v.AssetID == a.AssetID {
				return fmt.Errorf("%w: %s ya tiene la licencia", domain.ErrDuplicate, a.AssetCode)
			}
		}
		st.assignments.put(a.ID, *a)
		return nil
	})
}

func (r *SoftwareRepo) DeleteAssignment(_ context.Context, softwareID, assetID string) (bool, error) {
	var deleted bool
	err := r.do("software.unassign", func(st *state) error {
		for id, row := range st.assignments.rows {
			if row.v.SoftwareID == softwareID && row.v.AssetID == assetID {
				st.assignments.del(id)
				deleted = true
			}
		}
		return nil
	})
	return deleted, err
}

func (r *SoftwareRepo) ListAssignments(_ context.Context, softwareID string) ([]*entity.SoftwareAssignment, error) {
	var out []*entity.SoftwareAssignment
	err := r.do("software.list", func(st *state) error {
		out = ptrs(st.assignments.all(func(a entity.SoftwareAssignment) bool { return a.SoftwareID == softwareID }))
		return nil
	})
	return out, err
}

// ─── Users ─────────────────────────────────────────────────────────────────

type UserRepo struct{ base }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.do("users.create", func(st *state) error {
		for _, row := range st.users.rows {
			if strings.EqualFold(row.v.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do("users.get", func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = ptr(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do("users.get", func(st *state) error {
		for _, row := range st.users.rows {
			if strings.EqualFold(row.v.Email, email) {
				out = ptr(row.v)
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.do("users.list", func(st *state) error {
		out = ptrs(page(st.users.all(nil), limit, offset))
		return nil
	})
	return out, err
}
