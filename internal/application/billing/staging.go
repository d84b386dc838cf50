package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/billing"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/logger"
	"github.com/jhoicas/envos-stock/pkg/period"
)

// StagingUseCase staging de facturación mensual y overrides por (carga, SKU).
// Nunca escribe en el ledger.
type StagingUseCase struct {
	loadRepo    repository.LoadRepository
	articleRepo repository.ArticleRepository
	closingRepo repository.ClosingRepository
	overrides   OverrideStore
	log         *logger.Logger
	now         func() time.Time
}

// NewStagingUseCase construye el caso de uso.
func NewStagingUseCase(
	loadRepo repository.LoadRepository,
	articleRepo repository.ArticleRepository,
	closingRepo repository.ClosingRepository,
	overrides OverrideStore,
	log *logger.Logger,
) *StagingUseCase {
	return &StagingUseCase{
		loadRepo:    loadRepo,
		articleRepo: articleRepo,
		closingRepo: closingRepo,
		overrides:   overrides,
		log:         log.Component("billing"),
		now:         time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *StagingUseCase) WithClock(now func() time.Time) *StagingUseCase {
	uc.now = now
	return uc
}

// Summary calcula el staging del mes con los overrides aplicados.
func (uc *StagingUseCase) Summary(ctx context.Context, month string) (entity.BillingSummary, error) {
	if err := period.Validate(month); err != nil {
		return entity.BillingSummary{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	loads, err := uc.loadRepo.List(ctx, repository.LoadFilter{Month: month})
	if err != nil {
		return entity.BillingSummary{}, err
	}
	articles, err := uc.articleRepo.List(ctx, false)
	if err != nil {
		return entity.BillingSummary{}, err
	}
	ov, err := uc.overrides.Load(ctx, month)
	if err != nil {
		return entity.BillingSummary{}, err
	}

	ls := make([]entity.OperationalLoad, 0, len(loads))
	for _, l := range loads {
		ls = append(ls, *l)
	}
	as := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		as = append(as, *a)
	}
	return billing.Stage(month, ls, as, ov), nil
}

// Get devuelve el staging del mes y si admite overrides.
func (uc *StagingUseCase) Get(ctx context.Context, month string) (*dto.BillingResponse, error) {
	sum, err := uc.Summary(ctx, month)
	if err != nil {
		return nil, err
	}
	rec, err := uc.closingRepo.Get(ctx, month)
	if err != nil {
		return nil, err
	}
	status := entity.ClosingOpen
	if rec != nil {
		status = rec.Status
	}
	return toBillingResponse(sum, status, month == period.Of(uc.now()) && !rec.IsClosed()), nil
}

// SetOverride fija la cantidad facturable de una línea existente del mes en curso.
func (uc *StagingUseCase) SetOverride(ctx context.Context, in dto.SetOverrideRequest) (*dto.BillingLineResponse, error) {
	if in.Cantidad == nil || *in.Cantidad < 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser >= 0", domain.ErrInvalidInput)
	}
	key := entity.OverrideKey{LoadUID: strings.TrimSpace(in.LoadUID), SKU: strings.TrimSpace(in.SKU)}
	month, err := uc.editableMonth(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := uc.overrides.Set(ctx, month, key, *in.Cantidad); err != nil {
		return nil, err
	}
	uc.log.Info().Str("load_uid", key.LoadUID).Str("sku", key.SKU).Int64("cantidad", *in.Cantidad).Msg("override fijado")
	return uc.line(ctx, month, key)
}

// ClearOverride elimina el override; la línea vuelve a su cantidad original.
func (uc *StagingUseCase) ClearOverride(ctx context.Context, loadUID, sku string) (*dto.BillingLineResponse, error) {
	key := entity.OverrideKey{LoadUID: strings.TrimSpace(loadUID), SKU: strings.TrimSpace(sku)}
	month, err := uc.editableMonth(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := uc.overrides.Delete(ctx, month, key); err != nil {
		return nil, err
	}
	uc.log.Info().Str("load_uid", key.LoadUID).Str("sku", key.SKU).Msg("override eliminado")
	return uc.line(ctx, month, key)
}

// editableMonth comprueba que la línea exista en el mes en curso y que el mes siga abierto.
func (uc *StagingUseCase) editableMonth(ctx context.Context, key entity.OverrideKey) (string, error) {
	if key.LoadUID == "" || key.SKU == "" {
		return "", fmt.Errorf("%w: load_uid y sku son obligatorios", domain.ErrInvalidInput)
	}
	current := period.Of(uc.now())
	load, err := uc.loadRepo.GetByRef(ctx, key.LoadUID)
	if err != nil {
		return "", err
	}
	if load == nil {
		return "", fmt.Errorf("%w: carga %s", domain.ErrNotFound, key.LoadUID)
	}
	if load.Consumptions[key.SKU] <= 0 {
		return "", fmt.Errorf("%w: la carga %s no tiene línea para %s", domain.ErrNotFound, key.LoadUID, key.SKU)
	}
	if load.Month() != current {
		return "", fmt.Errorf("%w: la carga es de %s", domain.ErrHistoricalPeriod, load.Month())
	}
	rec, err := uc.closingRepo.Get(ctx, current)
	if err != nil {
		return "", err
	}
	if rec.IsClosed() {
		return "", fmt.Errorf("%w: %s", domain.ErrPeriodClosed, current)
	}
	return current, nil
}

func (uc *StagingUseCase) line(ctx context.Context, month string, key entity.OverrideKey) (*dto.BillingLineResponse, error) {
	sum, err := uc.Summary(ctx, month)
	if err != nil {
		return nil, err
	}
	ln, ok := billing.HasLine(sum.Lines, key)
	if !ok {
		return nil, fmt.Errorf("%w: línea %s", domain.ErrNotFound, key)
	}
	out := toLineResponse(ln)
	return &out, nil
}

func toLineResponse(ln entity.BillingLine) dto.BillingLineResponse {
	return dto.BillingLineResponse{
		LoadUID:            ln.LoadUID,
		Fecha:              ln.Date,
		Equipo:             ln.Equipment,
		Matricula:          ln.Plate,
		SKU:                ln.SKU,
		Articulo:           ln.ArticleName,
		CantidadOriginal:   ln.RawQty,
		CantidadFacturable: ln.BillableQty,
		PrecioUnitario:     ln.UnitPrice,
		Subtotal:           ln.Subtotal,
		Modificada:         ln.Modified,
	}
}

func toBillingResponse(sum entity.BillingSummary, status string, editable bool) *dto.BillingResponse {
	resp := &dto.BillingResponse{
		Month:         sum.Month,
		Estado:        status,
		Editable:      editable,
		Lineas:        make([]dto.BillingLineResponse, 0, len(sum.Lines)),
		Articulos:     make([]dto.BillingArticleResponse, 0, len(sum.Articles)),
		TotalCantidad: sum.TotalQuantity,
		Total:         sum.Total,
	}
	for _, ln := range sum.Lines {
		resp.Lineas = append(resp.Lineas, toLineResponse(ln))
	}
	for _, a := range sum.Articles {
		resp.Articulos = append(resp.Articulos, dto.BillingArticleResponse{
			SKU:            a.SKU,
			Articulo:       a.ArticleName,
			Cantidad:       a.Quantity,
			PrecioUnitario: a.UnitPrice,
			Subtotal:       a.Subtotal,
		})
	}
	return resp
}
