package closing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/closing"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/logger"
	"github.com/jhoicas/envos-stock/pkg/period"
)

// UseCase cierre mensual: OPEN -> CLOSED, bloqueado mientras haya cargas duplicadas en el mes.
type UseCase struct {
	txRunner    TxRunner
	closingRepo repository.ClosingRepository
	loadRepo    repository.LoadRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	closingRepo repository.ClosingRepository,
	loadRepo repository.LoadRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		closingRepo: closingRepo,
		loadRepo:    loadRepo,
		log:         log.Component("closing"),
		now:         time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Status devuelve el estado del mes y su checklist de cierre.
func (uc *UseCase) Status(ctx context.Context, month string) (*dto.ClosingResponse, error) {
	if err := period.Validate(month); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	rec, err := uc.closingRepo.Get(ctx, month)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &entity.MonthClosing{Month: month, Status: entity.ClosingOpen}
	}
	return uc.toResponse(ctx, rec)
}

// List devuelve los meses conocidos más el mes en curso, más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.ClosingResponse, error) {
	recs, err := uc.closingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	current := period.Of(uc.now())
	seen := false
	for _, r := range recs {
		if r.Month == current {
			seen = true
			break
		}
	}
	if !seen {
		recs = append(recs, &entity.MonthClosing{Month: current, Status: entity.ClosingOpen})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Month > recs[j].Month })

	out := make([]dto.ClosingResponse, 0, len(recs))
	for _, r := range recs {
		resp, err := uc.toResponse(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Close cierra el mes. Rechaza meses futuros, meses ya cerrados (ErrConflict) y
// meses con duplicados pendientes (*domain.PendingDuplicatesError) sin cambiar nada.
func (uc *UseCase) Close(ctx context.Context, month, by string) (*dto.ClosingResponse, error) {
	if err := period.Validate(month); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := uc.now()
	if period.After(month, period.Of(now)) {
		return nil, fmt.Errorf("%w: no se puede cerrar un mes futuro (%s)", domain.ErrInvalidInput, month)
	}

	var closed entity.MonthClosing
	err := uc.txRunner.RunClosing(ctx, func(loadRepo repository.LoadRepository, closingRepo repository.ClosingRepository) error {
		if err := closingRepo.EnsureOpen(ctx, month); err != nil {
			return err
		}
		rec, err := closingRepo.Get(ctx, month)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("cierre %s: registro no encontrado tras crearlo", month)
		}
		pending, err := loadRepo.CountDuplicates(ctx, month)
		if err != nil {
			return err
		}
		next, err := closing.Transition(*rec, pending, by, now)
		if err != nil {
			return err
		}
		ok, err := closingRepo.MarkClosed(ctx, month, next.ClosedBy, *next.ClosedAt)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el mes %s fue cerrado por otra operación", domain.ErrConflict, month)
		}
		closed = next
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("month", month).Msg("cierre de mes rechazado")
		return nil, err
	}

	uc.log.Info().Str("month", month).Str("closed_by", by).Msg("mes cerrado")
	return &dto.ClosingResponse{
		Month:       closed.Month,
		Label:       period.Label(closed.Month),
		Status:      closed.Status,
		ClosedBy:    closed.ClosedBy,
		ClosedAt:    closed.ClosedAt,
		PuedeCerrar: false,
	}, nil
}

func (uc *UseCase) toResponse(ctx context.Context, rec *entity.MonthClosing) (*dto.ClosingResponse, error) {
	pending, err := uc.loadRepo.CountDuplicates(ctx, rec.Month)
	if err != nil {
		return nil, err
	}
	return &dto.ClosingResponse{
		Month:                rec.Month,
		Label:                period.Label(rec.Month),
		Status:               rec.Status,
		ClosedBy:             rec.ClosedBy,
		ClosedAt:             rec.ClosedAt,
		DuplicadosPendientes: pending,
		PuedeCerrar:          rec.Status == entity.ClosingOpen && pending == 0 && !period.After(rec.Month, period.Of(uc.now())),
	}, nil
}
