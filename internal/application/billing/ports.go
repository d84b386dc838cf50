package billing

import (
	"context"
	"time"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// OverrideStore capa de overrides de cantidad facturable, particionada por mes.
// Load devuelve un mapa vacío si el mes no tiene overrides.
type OverrideStore interface {
	Load(ctx context.Context, month string) (entity.BillingOverrides, error)
	Set(ctx context.Context, month string, key entity.OverrideKey, qty int64) error
	Delete(ctx context.Context, month string, key entity.OverrideKey) error
}

// ReportMeta cabecera del informe mensual.
type ReportMeta struct {
	Company     string
	Subtitle    string
	Month       string
	PeriodLabel string // "2024 - Enero"
	GeneratedBy string
	GeneratedAt time.Time
}

// ReportPDFGenerator puerto para generar el informe mensual de consumo en PDF.
// La implementación concreta vive en infrastructure/pdf (Maroto).
type ReportPDFGenerator interface {
	GenerateMonthlyReport(ctx context.Context, meta ReportMeta, summary entity.BillingSummary) ([]byte, error)
}
