package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo calcula el devengado recorriendo el ledger.
type AnalyticsRepo struct{ db access }

func (r *AnalyticsRepo) aggregate() (map[string]*repository.PeriodRevenue, error) {
	byPeriod := make(map[string]*repository.PeriodRevenue)
	skus := make(map[string]map[string]struct{})
	err := r.db.with(func(st *state) error {
		for _, m := range st.movements {
			if m.Type != entity.MovementOut {
				continue
			}
			a, ok := st.articles[m.SKU]
			if !ok {
				continue
			}
			pr, ok := byPeriod[m.Period]
			if !ok {
				pr = &repository.PeriodRevenue{Period: m.Period, Revenue: decimal.Zero}
				byPeriod[m.Period] = pr
				skus[m.Period] = make(map[string]struct{})
			}
			pr.Units += m.Quantity
			pr.Revenue = pr.Revenue.Add(a.SalePrice.Mul(decimal.NewFromInt(m.Quantity)))
			skus[m.Period][m.SKU] = struct{}{}
		}
		return nil
	})
	for p, pr := range byPeriod {
		pr.Articles = len(skus[p])
	}
	return byPeriod, err
}

func (r *AnalyticsRepo) RevenueByPeriod(_ context.Context, limit int) ([]repository.PeriodRevenue, error) {
	agg, err := r.aggregate()
	if err != nil {
		return nil, err
	}
	out := make([]repository.PeriodRevenue, 0, len(agg))
	for _, pr := range agg {
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepo) RevenueForPeriod(_ context.Context, period string) (repository.PeriodRevenue, error) {
	agg, err := r.aggregate()
	if err != nil {
		return repository.PeriodRevenue{}, err
	}
	if pr, ok := agg[period]; ok {
		return *pr, nil
	}
	return repository.PeriodRevenue{Period: period, Revenue: decimal.Zero}, nil
}
