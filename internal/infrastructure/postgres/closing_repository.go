package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ repository.ClosingRepository = (*ClosingRepo)(nil)

// ClosingRepo estado de cierre por mes (cierres_mes).
type ClosingRepo struct {
	q Querier
}

// NewClosingRepository construye el adaptador de cierres (pool o tx).
func NewClosingRepository(q Querier) *ClosingRepo {
	return &ClosingRepo{q: q}
}

func scanClosing(row pgx.Row) (*entity.MonthClosing, error) {
	var (
		c  entity.MonthClosing
		by *string
	)
	if err := row.Scan(&c.Month, &c.Status, &by, &c.ClosedAt); err != nil {
		return nil, err
	}
	if by != nil {
		c.ClosedBy = *by
	}
	return &c, nil
}

// Get devuelve (nil, nil) si el mes no tiene registro.
func (r *ClosingRepo) Get(ctx context.Context, month string) (*entity.MonthClosing, error) {
	c, err := scanClosing(r.q.QueryRow(ctx,
		`SELECT month, status, closed_by, closed_at FROM cierres_mes WHERE month = $1`, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cierre", err)
	}
	return c, nil
}

// List devuelve todos los registros, mes más reciente primero.
func (r *ClosingRepo) List(ctx context.Context) ([]*entity.MonthClosing, error) {
	rows, err := r.q.Query(ctx,
		`SELECT month, status, closed_by, closed_at FROM cierres_mes ORDER BY month DESC`)
	if err != nil {
		return nil, mapError("list cierres", err)
	}
	defer rows.Close()

	var out []*entity.MonthClosing
	for rows.Next() {
		c, err := scanClosing(rows)
		if err != nil {
			return nil, mapError("scan cierre", err)
		}
		out = append(out, c)
	}
	return out, mapError("list cierres", rows.Err())
}

// EnsureOpen crea el registro OPEN si no existe.
func (r *ClosingRepo) EnsureOpen(ctx context.Context, month string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO cierres_mes (month, status) VALUES ($1, 'OPEN') ON CONFLICT (month) DO NOTHING`, month)
	return mapError("ensure cierre", err)
}

// MarkClosed cierra el mes solo si sigue OPEN; la condición en el WHERE serializa cierres concurrentes.
func (r *ClosingRepo) MarkClosed(ctx context.Context, month, by string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE cierres_mes SET status = 'CLOSED', closed_by = $2, closed_at = $3
		WHERE month = $1 AND status = 'OPEN'`, month, by, at)
	if err != nil {
		return false, mapError("cerrar mes", err)
	}
	return tag.RowsAffected() == 1, nil
}
