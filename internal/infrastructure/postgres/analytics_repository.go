package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el devengado.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// revenueQuery agrega las SALIDAs por periodo valoradas a precio_venta.
// Los movimientos de SKUs que ya no existen en el catálogo no suman (JOIN).
func revenueQuery() squirrel.SelectBuilder {
	return psql.
		Select(
			"m.periodo AS periodo",
			"SUM(m.cantidad)::bigint AS unidades",
			"COALESCE(SUM(m.cantidad * a.precio_venta), 0) AS devengado",
			"COUNT(DISTINCT m.sku) AS articulos",
		).
		From("movimientos m").
		Join("articulos a ON a.sku = m.sku").
		Where(squirrel.Eq{"m.tipo": entity.MovementOut}).
		GroupBy("m.periodo")
}

// RevenueByPeriod devuelve el devengado por periodo, más reciente primero.
func (r *AnalyticsRepo) RevenueByPeriod(ctx context.Context, limit int) ([]repository.PeriodRevenue, error) {
	q := revenueQuery().OrderBy("m.periodo DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build revenue by period: %w", err)
	}
	var out []repository.PeriodRevenue
	if err := pgxscan.Select(ctx, r.q, &out, query, args...); err != nil {
		return nil, mapError("analytics.RevenueByPeriod", err)
	}
	return out, nil
}

// RevenueForPeriod devuelve el devengado de un periodo; cero si no hubo salidas.
func (r *AnalyticsRepo) RevenueForPeriod(ctx context.Context, p string) (repository.PeriodRevenue, error) {
	query, args, err := revenueQuery().Where(squirrel.Eq{"m.periodo": p}).ToSql()
	if err != nil {
		return repository.PeriodRevenue{}, fmt.Errorf("build revenue for period: %w", err)
	}
	var out []repository.PeriodRevenue
	if err := pgxscan.Select(ctx, r.q, &out, query, args...); err != nil {
		return repository.PeriodRevenue{}, mapError("analytics.RevenueForPeriod", err)
	}
	if len(out) == 0 {
		return repository.PeriodRevenue{Period: p, Revenue: decimal.Zero}, nil
	}
	return out[0], nil
}
