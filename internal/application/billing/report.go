package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/pkg/period"
)

// ReportUseCase genera el informe mensual de consumo (PDF) a partir del staging.
type ReportUseCase struct {
	staging   *StagingUseCase
	generator ReportPDFGenerator
	company   string
	subtitle  string
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(staging *StagingUseCase, generator ReportPDFGenerator, company, subtitle string) *ReportUseCase {
	return &ReportUseCase{staging: staging, generator: generator, company: company, subtitle: subtitle, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// MonthlyReport devuelve el PDF y su nombre de fichero.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrInvalidInput    si el mes no es válido o no tiene líneas facturables.
func (uc *ReportUseCase) MonthlyReport(ctx context.Context, month, generatedBy string) (pdfBytes []byte, filename string, err error) {
	sum, err := uc.staging.Summary(ctx, month)
	if err != nil {
		return nil, "", err
	}
	if len(sum.Lines) == 0 {
		return nil, "", fmt.Errorf("%w: no hay consumos facturables en %s", domain.ErrInvalidInput, month)
	}
	meta := ReportMeta{
		Company:     uc.company,
		Subtitle:    uc.subtitle,
		Month:       month,
		PeriodLabel: period.Label(month),
		GeneratedBy: generatedBy,
		GeneratedAt: uc.now(),
	}
	pdfBytes, err = uc.generator.GenerateMonthlyReport(ctx, meta, sum)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generar pdf: %w", err)
	}
	return pdfBytes, reportFilename(uc.company, month), nil
}

// reportFilename "ENVOS - Obramat" + "2024-01" -> "ENVOS_Obramat_Consumo_2024-01.pdf".
func reportFilename(company, month string) string {
	fields := strings.FieldsFunc(company, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == '_'
	})
	base := strings.Join(fields, "_")
	if base == "" {
		base = "Informe"
	}
	return fmt.Sprintf("%s_Consumo_%s.pdf", base, month)
}
