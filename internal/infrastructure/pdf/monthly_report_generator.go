// Package pdf genera el informe mensual de consumo por carga para facturación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + subtítulo │  Periodo + generado por/fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Artículo | SKU | Cantidad | P. Unitario | Subtotal │
//	│  TOTAL A FACTURAR                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha | Ref. Carga | Material | SKU | Cantidad     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.ReportPDFGenerator = (*MonthlyReportGenerator)(nil)

// MonthlyReportGenerator implementa billing.ReportPDFGenerator usando Maroto v2.
type MonthlyReportGenerator struct {
	printer *message.Printer
}

// NewMonthlyReportGenerator construye el generador con formato numérico español.
func NewMonthlyReportGenerator() *MonthlyReportGenerator {
	return &MonthlyReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateMonthlyReport genera el PDF y devuelve sus bytes.
func (g *MonthlyReportGenerator) GenerateMonthlyReport(
	_ context.Context,
	meta appbilling.ReportMeta,
	summary entity.BillingSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de consumo "+meta.Month, true).
		WithAuthor(meta.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("RESUMEN POR ARTÍCULO"))
	m.AddRows(summaryHeaderRow())
	m.AddRows(g.summaryRows(summary.Articles)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(summary))

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("DETALLE POR CARGA"))
	m.AddRows(detailHeaderRow())
	m.AddRows(g.detailRows(summary.Lines)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + subtítulo (izq) y periodo + autoría (der).
func (g *MonthlyReportGenerator) headerRow(meta appbilling.ReportMeta) core.Row {
	generated := fmt.Sprintf("Generado por %s el %s",
		nonEmpty(meta.GeneratedBy, "-"), meta.GeneratedAt.Format("02/01/2006 15:04"))

	return row.New(20).Add(
		col.New(7).Add(
			text.New(meta.Company, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(meta.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE CONSUMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(meta.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(generated, props.Text{
				Size: 7, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func bodyCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func summaryHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Artículo", 4, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Cantidad", 2, align.Right),
		headerCell("P. Unitario", 2, align.Right),
		headerCell("Subtotal", 2, align.Right),
	)
}

func (g *MonthlyReportGenerator) summaryRows(articles []entity.BillingArticleTotal) []core.Row {
	rows := make([]core.Row, 0, len(articles))
	for i, a := range articles {
		r := row.New(7).Add(
			bodyCell(a.ArticleName, 4, align.Left),
			bodyCell(a.SKU, 2, align.Left),
			bodyCell(g.quantity(a.Quantity), 2, align.Right),
			bodyCell(g.money(a.UnitPrice), 2, align.Right),
			bodyCell(g.money(a.Subtotal), 2, align.Right),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// totalRow: TOTAL A FACTURAR alineado con la columna de subtotales.
func (g *MonthlyReportGenerator) totalRow(summary entity.BillingSummary) core.Row {
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a,
			Color: colorPrimary, Top: 2, Right: 1,
		}))
	}
	return row.New(10).Add(
		bold("TOTAL A FACTURAR", 6, align.Right),
		bold(g.quantity(summary.TotalQuantity), 2, align.Right),
		col.New(2),
		bold(g.money(summary.Total), 2, align.Right),
	)
}

func detailHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Ref. Carga", 2, align.Left),
		headerCell("Material", 4, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Cantidad", 2, align.Right),
	)
}

// detailRows: una fila por (carga, sku) con la cantidad facturable; las modificadas se marcan con *.
func (g *MonthlyReportGenerator) detailRows(lines []entity.BillingLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := g.quantity(l.BillableQty)
		if l.Modified {
			qty += " *"
		}
		rows = append(rows, row.New(6).Add(
			bodyCell(l.Date, 2, align.Left),
			bodyCell(l.LoadUID, 2, align.Left),
			bodyCell(l.ArticleName, 4, align.Left),
			bodyCell(l.SKU, 2, align.Left),
			bodyCell(qty, 2, align.Right),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MonthlyReportGenerator) quantity(n int64) string {
	return g.printer.Sprint(number.Decimal(n))
}

// money formatea con dos decimales y separadores españoles: 1.234,50 €.
func (g *MonthlyReportGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("%v €", number.Decimal(f, number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
