package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// PeriodRevenue devengado de un periodo: Σ(SALIDA × precio_venta).
type PeriodRevenue struct {
	Period   string          `db:"periodo"`
	Units    int64           `db:"unidades"`
	Revenue  decimal.Decimal `db:"devengado"`
	Articles int             `db:"articulos"`
}

// AnalyticsRepository consultas de lectura agregadas. Read-only.
type AnalyticsRepository interface {
	// RevenueByPeriod devuelve el devengado agrupado por periodo, más reciente primero.
	// limit <= 0 = sin límite.
	RevenueByPeriod(ctx context.Context, limit int) ([]PeriodRevenue, error)
	// RevenueForPeriod devuelve el devengado de un periodo (cero si no hay salidas).
	RevenueForPeriod(ctx context.Context, period string) (PeriodRevenue, error)
}
