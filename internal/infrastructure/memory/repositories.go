package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var (
	_ repository.ArticleRepository  = (*ArticleRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.LoadRepository     = (*LoadRepo)(nil)
	_ repository.ClosingRepository  = (*ClosingRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ── Artículos ─────────────────────────────────────────────────────────────────

// ArticleRepo implementa repository.ArticleRepository.
type ArticleRepo struct{ db access }

func (r *ArticleRepo) List(_ context.Context, onlyActive bool) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.db.with(func(st *state) error {
		for _, a := range st.articles {
			if onlyActive && !a.Active {
				continue
			}
			a := a
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}

func (r *ArticleRepo) GetBySKU(_ context.Context, sku string) (*entity.Article, error) {
	var out *entity.Article
	err := r.db.with(func(st *state) error {
		if a, ok := st.articles[sku]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.articles[a.SKU]; ok {
			return domain.ErrDuplicate
		}
		st.articles[a.SKU] = *a
		return nil
	})
}

func (r *ArticleRepo) Update(_ context.Context, a *entity.Article) error {
	return r.db.with(func(st *state) error {
		cur, ok := st.articles[a.SKU]
		if !ok {
			return domain.ErrNotFound
		}
		upd := *a
		upd.InitialStock = cur.InitialStock
		upd.CreatedOn = cur.CreatedOn
		st.articles[a.SKU] = upd
		return nil
	})
}

func (r *ArticleRepo) SetActive(_ context.Context, sku string, active bool) error {
	return r.db.with(func(st *state) error {
		a, ok := st.articles[sku]
		if !ok {
			return domain.ErrNotFound
		}
		a.Active = active
		st.articles[sku] = a
		return nil
	})
}

func (r *ArticleRepo) UpdateLastCost(_ context.Context, sku string, cost decimal.Decimal) error {
	return r.db.with(func(st *state) error {
		a, ok := st.articles[sku]
		if !ok {
			return domain.ErrNotFound
		}
		a.LastCost = cost
		st.articles[sku] = a
		return nil
	})
}

// ── Ledger ────────────────────────────────────────────────────────────────────

// MovementRepo implementa repository.MovementRepository.
type MovementRepo struct{ db access }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.db.with(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.db.with(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.Period != "" && m.Period != f.Period {
				continue
			}
			if f.SKU != "" && m.SKU != f.SKU {
				continue
			}
			if f.Class != "" && m.Class() != f.Class {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r *MovementRepo) DeleteByOperationRef(_ context.Context, ref string) (int64, error) {
	var n int64
	err := r.db.with(func(st *state) error {
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if m.OperationRef != "" && m.OperationRef == ref {
				n++
				continue
			}
			kept = append(kept, m)
		}
		st.movements = kept
		return nil
	})
	return n, err
}

// ── Cargas ────────────────────────────────────────────────────────────────────

// LoadRepo implementa repository.LoadRepository.
type LoadRepo struct{ db access }

func (r *LoadRepo) List(_ context.Context, f repository.LoadFilter) ([]*entity.OperationalLoad, error) {
	var out []*entity.OperationalLoad
	err := r.db.with(func(st *state) error {
		for _, l := range st.loads {
			if f.Month != "" && l.Month() != f.Month {
				continue
			}
			if f.OnlyDuplicate && !l.Duplicate {
				continue
			}
			c := cloneLoad(l)
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].RefCarga < out[j].RefCarga
	})
	return out, err
}

func (r *LoadRepo) GetByRef(_ context.Context, ref string) (*entity.OperationalLoad, error) {
	var out *entity.OperationalLoad
	err := r.db.with(func(st *state) error {
		if l, ok := st.loads[ref]; ok {
			c := cloneLoad(l)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByRef: las transacciones en memoria ya son exclusivas.
func (r *LoadRepo) GetForUpdate(ctx context.Context, ref string) (*entity.OperationalLoad, error) {
	return r.GetByRef(ctx, ref)
}

func (r *LoadRepo) Upsert(_ context.Context, l *entity.OperationalLoad) error {
	return r.db.with(func(st *state) error {
		st.loads[l.RefCarga] = cloneLoad(*l)
		return nil
	})
}

func (r *LoadRepo) CountDuplicates(_ context.Context, month string) (int, error) {
	n := 0
	err := r.db.with(func(st *state) error {
		for _, l := range st.loads {
			if l.Duplicate && l.Month() == month {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Cierres ───────────────────────────────────────────────────────────────────

// ClosingRepo implementa repository.ClosingRepository.
type ClosingRepo struct{ db access }

func (r *ClosingRepo) Get(_ context.Context, month string) (*entity.MonthClosing, error) {
	var out *entity.MonthClosing
	err := r.db.with(func(st *state) error {
		if c, ok := st.closings[month]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClosingRepo) List(_ context.Context) ([]*entity.MonthClosing, error) {
	var out []*entity.MonthClosing
	err := r.db.with(func(st *state) error {
		for _, c := range st.closings {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, err
}

func (r *ClosingRepo) EnsureOpen(_ context.Context, month string) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.closings[month]; !ok {
			st.closings[month] = entity.MonthClosing{Month: month, Status: entity.ClosingOpen}
		}
		return nil
	})
}

func (r *ClosingRepo) MarkClosed(_ context.Context, month, by string, at time.Time) (bool, error) {
	closed := false
	err := r.db.with(func(st *state) error {
		c, ok := st.closings[month]
		if !ok || c.Status != entity.ClosingOpen {
			return nil
		}
		c.Status = entity.ClosingClosed
		c.ClosedBy = by
		c.ClosedAt = &at
		st.closings[month] = c
		closed = true
		return nil
	})
	return closed, err
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ db access }

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.with(func(st *state) error {
		if u, ok := st.users[email]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.users[u.Email]; ok {
			return fmt.Errorf("usuario %s: %w", u.Email, domain.ErrDuplicate)
		}
		st.users[u.Email] = *u
		return nil
	})
}
