// Package analytics contiene los casos de uso de estadísticas de consumo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/period"
)

const statsHistoryPeriods = 12 // periodos en el histórico

// StatsUseCase devengado del mes en curso (Σ SALIDA × precio_venta) e histórico por periodo.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type StatsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(analyticsRepo repository.AnalyticsRepository) *StatsUseCase {
	return &StatsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *StatsUseCase) WithClock(now func() time.Time) *StatsUseCase {
	uc.now = now
	return uc
}

// GetStats lanza las dos consultas en paralelo y compone la respuesta.
func (uc *StatsUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	current := period.Of(uc.now())

	type currentResult struct {
		rev repository.PeriodRevenue
		err error
	}
	type historyResult struct {
		rows []repository.PeriodRevenue
		err  error
	}
	curCh := make(chan currentResult, 1)
	histCh := make(chan historyResult, 1)

	go func() {
		rev, err := uc.analyticsRepo.RevenueForPeriod(ctx, current)
		curCh <- currentResult{rev, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RevenueByPeriod(ctx, statsHistoryPeriods)
		histCh <- historyResult{rows, err}
	}()

	cur := <-curCh
	hist := <-histCh
	if cur.err != nil {
		return nil, fmt.Errorf("stats: devengado del mes: %w", cur.err)
	}
	if hist.err != nil {
		return nil, fmt.Errorf("stats: histórico: %w", hist.err)
	}

	resp := &dto.StatsResponse{
		Periodo:   current,
		Devengado: cur.rev.Revenue.Round(2),
		Unidades:  cur.rev.Units,
		Historico: make([]dto.PeriodStatDTO, 0, len(hist.rows)),
	}
	for _, r := range hist.rows {
		resp.Historico = append(resp.Historico, dto.PeriodStatDTO{
			Periodo:   r.Period,
			Label:     period.Label(r.Period),
			Unidades:  r.Units,
			Devengado: r.Revenue.Round(2),
			Articulos: r.Articles,
		})
	}
	return resp, nil
}
