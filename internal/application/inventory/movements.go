package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/logger"
	"github.com/jhoicas/envos-stock/pkg/period"
)

// Tipos de entrada admitidos.
const (
	InboundPurchase = "Compra"
	InboundReverse  = "Logística Inversa"
)

// MovementUseCase registra movimientos interactivos en el ledger.
// Cada escritura es una unidad atómica; nunca se actualiza un movimiento existente.
type MovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.MovementRepository
	articleRepo repository.ArticleRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	articleRepo repository.ArticleRepository,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		articleRepo: articleRepo,
		log:         log.Component("movements"),
		now:         time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *MovementUseCase) WithClock(now func() time.Time) *MovementUseCase {
	uc.now = now
	return uc
}

// MovementInput datos comunes de cualquier movimiento.
type MovementInput struct {
	SKU      string
	Type     string
	Quantity int64
	Reason   string
	Period   string
	User     string
}

// Append valida y añade un movimiento al ledger.
func (uc *MovementUseCase) Append(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.LoadRepository,
		closingRepo repository.ClosingRepository,
		articleRepo repository.ArticleRepository,
	) error {
		m, err := uc.appendInTx(ctx, movRepo, closingRepo, articleRepo, in)
		created = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// RegisterInbound registra una entrada; si trae coste unitario actualiza ultimo_coste.
func (uc *MovementUseCase) RegisterInbound(ctx context.Context, user string, in dto.InboundRequest) (*dto.MovementResponse, error) {
	if in.Tipo != InboundPurchase && in.Tipo != InboundReverse {
		return nil, fmt.Errorf("%w: tipo de entrada %q", domain.ErrInvalidInput, in.Tipo)
	}
	if in.CosteUnitario != nil && in.CosteUnitario.IsNegative() {
		return nil, fmt.Errorf("%w: coste unitario negativo", domain.ErrInvalidInput)
	}
	reason := strings.TrimSpace(fmt.Sprintf("%s: %s %s", in.Tipo, strings.TrimSpace(in.Proveedor), strings.TrimSpace(in.Albaran)))

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.LoadRepository,
		closingRepo repository.ClosingRepository,
		articleRepo repository.ArticleRepository,
	) error {
		m, err := uc.appendInTx(ctx, movRepo, closingRepo, articleRepo, MovementInput{
			SKU: in.SKU, Type: entity.MovementIn, Quantity: in.Cantidad, Reason: reason, Period: in.Periodo, User: user,
		})
		if err != nil {
			return err
		}
		created = m
		if in.CosteUnitario != nil {
			return articleRepo.UpdateLastCost(ctx, m.SKU, *in.CosteUnitario)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// RegisterConsumption registra una salida manual.
func (uc *MovementUseCase) RegisterConsumption(ctx context.Context, user string, in dto.ConsumptionRequest) (*dto.MovementResponse, error) {
	if strings.Contains(in.Motivo, entity.RegularizationMarker) {
		return nil, fmt.Errorf("%w: use regularización para ajustes", domain.ErrInvalidInput)
	}
	return uc.Append(ctx, MovementInput{
		SKU: in.SKU, Type: entity.MovementOut, Quantity: in.Cantidad, Reason: in.Motivo, Period: in.Periodo, User: user,
	})
}

// Regularize aplica un ajuste o un conteo físico. Un conteo que coincide con el
// stock actual no genera movimiento.
func (uc *MovementUseCase) Regularize(ctx context.Context, user string, in dto.RegularizationRequest) (*dto.RegularizationResponse, error) {
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, fmt.Errorf("%w: motivo obligatorio", domain.ErrInvalidInput)
	}
	var resp dto.RegularizationResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.LoadRepository,
		closingRepo repository.ClosingRepository,
		articleRepo repository.ArticleRepository,
	) error {
		a, err := articleRepo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.SKU)
		}
		history, err := movRepo.List(ctx, repository.MovementFilter{SKU: a.SKU})
		if err != nil {
			return err
		}
		current := inventory.CurrentStock(*a, derefMovements(history))
		delta, err := inventory.RegularizationDelta(in.Modo, in.Cantidad, current)
		if err != nil {
			return err
		}
		resp.StockAnterior = current
		resp.StockNuevo = current + delta
		resp.Delta = delta
		if delta == 0 {
			return nil
		}
		movType, qty := inventory.RegularizationMovement(delta)
		m, err := uc.appendInTx(ctx, movRepo, closingRepo, articleRepo, MovementInput{
			SKU: a.SKU, Type: movType, Quantity: qty, Reason: inventory.RegularizationReason(strings.TrimSpace(in.Motivo)), Period: in.Periodo, User: user,
		})
		if err != nil {
			return err
		}
		resp.Movimiento = toMovementResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List devuelve el ledger filtrado.
func (uc *MovementUseCase) List(ctx context.Context, f dto.MovementFilterRequest) ([]dto.MovementResponse, error) {
	if f.Periodo != "" {
		if err := period.Validate(f.Periodo); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	if f.Clase != "" && !entity.ValidMovementClass(f.Clase) {
		return nil, fmt.Errorf("%w: clase %q", domain.ErrInvalidInput, f.Clase)
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{Period: f.Periodo, SKU: f.SKU, Class: f.Clase})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// appendInTx valida contra el catálogo y el cierre del periodo, y persiste el movimiento.
func (uc *MovementUseCase) appendInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	closingRepo repository.ClosingRepository,
	articleRepo repository.ArticleRepository,
	in MovementInput,
) (*entity.Movement, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Reason = strings.TrimSpace(in.Reason)
	if in.SKU == "" || in.Reason == "" {
		return nil, fmt.Errorf("%w: sku y motivo son obligatorios", domain.ErrInvalidInput)
	}
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	now := uc.now()
	if in.Period == "" {
		in.Period = period.Of(now)
	}
	if err := period.Validate(in.Period); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	a, err := articleRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.SKU)
	}
	if !a.Active {
		return nil, fmt.Errorf("%w: el artículo %s está desactivado", domain.ErrInvalidInput, in.SKU)
	}

	rec, err := closingRepo.Get(ctx, in.Period)
	if err != nil {
		return nil, err
	}
	if rec.IsClosed() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPeriodClosed, in.Period)
	}

	m := &entity.Movement{
		ID:        uuid.New().String(),
		SKU:       a.SKU,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		User:      in.User,
		Period:    in.Period,
		CreatedAt: now,
	}
	if err := movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sku", m.SKU).
		Str("tipo", m.Type).
		Int64("cantidad", m.Quantity).
		Str("periodo", m.Period).
		Msg("movimiento registrado")
	return m, nil
}
