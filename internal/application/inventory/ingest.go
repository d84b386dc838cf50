package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/logger"
	"github.com/jhoicas/envos-stock/pkg/period"
)

var tracer = otel.Tracer("github.com/jhoicas/envos-stock/internal/application/inventory")

// dateLayouts formatos de fecha aceptados en los registros de carga.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// IngestLoadsUseCase normaliza lotes de cargas externas en salidas del ledger.
// Todo el lote va en una única transacción: cualquier fallo revierte el lote completo.
type IngestLoadsUseCase struct {
	txRunner TxRunner
	loadRepo repository.LoadRepository
	user     string
	reason   string
	log      *logger.Logger
	now      func() time.Time
}

// NewIngestLoadsUseCase construye el caso de uso. user y reason son los valores
// fijos que se escriben en cada salida generada.
func NewIngestLoadsUseCase(txRunner TxRunner, loadRepo repository.LoadRepository, user, reason string, log *logger.Logger) *IngestLoadsUseCase {
	return &IngestLoadsUseCase{
		txRunner: txRunner,
		loadRepo: loadRepo,
		user:     user,
		reason:   reason,
		log:      log.Component("ingest"),
		now:      time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *IngestLoadsUseCase) WithClock(now func() time.Time) *IngestLoadsUseCase {
	uc.now = now
	return uc
}

type parsedRecord struct {
	load      entity.OperationalLoad
	duplicate *bool
	modified  *bool
}

// Sync procesa el lote. Por registro: upsert de la carga, borrado de sus
// movimientos previos y una SALIDA por SKU con cantidad > 0.
func (uc *IngestLoadsUseCase) Sync(ctx context.Context, records []dto.SyncLoadRecord) (*dto.SyncResponse, error) {
	ctx, span := tracer.Start(ctx, "IngestLoads.Sync")
	defer span.End()
	span.SetAttributes(attribute.Int("ingest.batch_size", len(records)))

	parsed := make([]parsedRecord, 0, len(records))
	for i, r := range records {
		p, err := parseRecord(r)
		if err != nil {
			return nil, uc.fail(span, &domain.BatchError{RefCarga: r.RefCarga, Index: i, Err: err})
		}
		parsed = append(parsed, p)
	}
	if len(parsed) == 0 {
		return &dto.SyncResponse{Success: true, Count: 0}, nil
	}

	now := uc.now()
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		loadRepo repository.LoadRepository,
		closingRepo repository.ClosingRepository,
		articleRepo repository.ArticleRepository,
	) error {
		for i, p := range parsed {
			if err := uc.apply(ctx, movRepo, loadRepo, closingRepo, articleRepo, p, now); err != nil {
				return &domain.BatchError{RefCarga: p.load.RefCarga, Index: i, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(span, err)
	}

	uc.log.Info().Int("count", len(parsed)).Msg("lote de cargas sincronizado")
	return &dto.SyncResponse{Success: true, Count: len(parsed)}, nil
}

func (uc *IngestLoadsUseCase) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	uc.log.Error().Err(err).Msg("lote de cargas rechazado")
	return err
}

func (uc *IngestLoadsUseCase) apply(
	ctx context.Context,
	movRepo repository.MovementRepository,
	loadRepo repository.LoadRepository,
	closingRepo repository.ClosingRepository,
	articleRepo repository.ArticleRepository,
	p parsedRecord,
	now time.Time,
) error {
	load := p.load
	month := load.Month()

	prev, err := loadRepo.GetForUpdate(ctx, load.RefCarga)
	if err != nil {
		return err
	}
	// la hoja reenvía el histórico completo: una carga sin cambios no se toca,
	// aunque su mes esté cerrado
	if unchanged(prev, p) {
		uc.log.Debug().Str("ref_carga", load.RefCarga).Msg("carga sin cambios")
		return nil
	}
	if err := ensureWritable(ctx, closingRepo, month); err != nil {
		return err
	}
	fp := load.Fingerprint()
	if prev == nil {
		load.OriginalFingerprint = fp
	} else {
		if prev.Month() != month {
			if err := ensureWritable(ctx, closingRepo, prev.Month()); err != nil {
				return err
			}
		}
		load.OriginalFingerprint = prev.OriginalFingerprint
		if load.OriginalFingerprint == "" {
			load.OriginalFingerprint = fp
		}
		load.Duplicate = prev.Duplicate
		load.Modified = prev.Modified || fp != load.OriginalFingerprint
	}
	if p.duplicate != nil {
		load.Duplicate = *p.duplicate
	}
	if p.modified != nil {
		load.Modified = *p.modified
	}
	load.UpdatedAt = now

	if err := loadRepo.Upsert(ctx, &load); err != nil {
		return err
	}
	if err := closingRepo.EnsureOpen(ctx, month); err != nil {
		return err
	}
	if _, err := movRepo.DeleteByOperationRef(ctx, load.RefCarga); err != nil {
		return err
	}
	for _, sku := range load.SortedSKUs() {
		qty := load.Consumptions[sku]
		if qty <= 0 {
			continue
		}
		m := &entity.Movement{
			ID:           uuid.New().String(),
			SKU:          sku,
			Type:         entity.MovementOut,
			Quantity:     qty,
			Reason:       uc.reason,
			User:         uc.user,
			Period:       month,
			OperationRef: load.RefCarga,
			CreatedAt:    now,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		art, err := articleRepo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if art == nil {
			uc.log.Warn().Str("ref_carga", load.RefCarga).Str("sku", sku).Int64("cantidad", qty).
				Msg("SKU de carga sin artículo en el catálogo")
		}
	}
	return nil
}

// unchanged indica si el registro coincide con la carga almacenada: misma
// fecha, equipo, matrícula y consumos, y flags ausentes o iguales.
func unchanged(prev *entity.OperationalLoad, p parsedRecord) bool {
	if prev == nil {
		return false
	}
	l := p.load
	if !prev.Date.Equal(l.Date) || prev.Equipment != l.Equipment || prev.Plate != l.Plate {
		return false
	}
	if prev.Fingerprint() != l.Fingerprint() {
		return false
	}
	if p.duplicate != nil && *p.duplicate != prev.Duplicate {
		return false
	}
	if p.modified != nil && *p.modified != prev.Modified {
		return false
	}
	return true
}

// List devuelve las cargas filtradas por mes y/o duplicadas.
func (uc *IngestLoadsUseCase) List(ctx context.Context, f dto.LoadFilterRequest) ([]dto.LoadResponse, error) {
	if f.Month != "" {
		if err := period.Validate(f.Month); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	list, err := uc.loadRepo.List(ctx, repository.LoadFilter{Month: f.Month, OnlyDuplicate: f.Duplicados})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLoadResponse(l))
	}
	return out, nil
}

func ensureWritable(ctx context.Context, closingRepo repository.ClosingRepository, month string) error {
	rec, err := closingRepo.Get(ctx, month)
	if err != nil {
		return err
	}
	if rec.IsClosed() {
		return fmt.Errorf("%w: %s", domain.ErrPeriodClosed, month)
	}
	return nil
}

func parseRecord(r dto.SyncLoadRecord) (parsedRecord, error) {
	ref := strings.TrimSpace(r.RefCarga)
	if ref == "" {
		return parsedRecord{}, fmt.Errorf("%w: ref_carga vacía", domain.ErrInvalidInput)
	}
	if strings.Contains(ref, entity.OverrideKeySep) {
		return parsedRecord{}, fmt.Errorf("%w: ref_carga %q contiene %q", domain.ErrInvalidInput, ref, entity.OverrideKeySep)
	}
	date, err := parseDate(r.Fecha)
	if err != nil {
		return parsedRecord{}, err
	}
	cons := make(map[string]int64, len(r.Consumos))
	for sku, qty := range r.Consumos {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			return parsedRecord{}, fmt.Errorf("%w: SKU vacío en consumos", domain.ErrInvalidInput)
		}
		if strings.Contains(sku, entity.OverrideKeySep) {
			return parsedRecord{}, fmt.Errorf("%w: SKU %q contiene %q", domain.ErrInvalidInput, sku, entity.OverrideKeySep)
		}
		if qty < 0 {
			return parsedRecord{}, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, sku)
		}
		cons[sku] += qty
	}
	return parsedRecord{
		load: entity.OperationalLoad{
			RefCarga:     ref,
			Date:         date,
			Equipment:    strings.TrimSpace(r.Equipo),
			Plate:        strings.TrimSpace(r.Matricula),
			Consumptions: cons,
		},
		duplicate: r.Duplicado,
		modified:  r.Modificada,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fecha %q no reconocida", domain.ErrInvalidInput, s)
}
