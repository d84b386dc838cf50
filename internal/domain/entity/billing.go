package entity

import "github.com/shopspring/decimal"

// OverrideKey identifica una línea facturable: (load_uid, sku).
type OverrideKey struct {
	LoadUID string
	SKU     string
}

// OverrideKeySep separador de la clave plana. La ingestión lo rechaza en
// ref_carga y en los SKU.
const OverrideKeySep = "|"

// String clave plana "load_uid|sku" usada por los almacenes de overrides.
func (k OverrideKey) String() string {
	return k.LoadUID + OverrideKeySep + k.SKU
}

// BillingOverrides capa dispersa de correcciones de cantidad facturable.
type BillingOverrides map[OverrideKey]int64

// BillingLine línea de staging de facturación.
type BillingLine struct {
	LoadUID     string
	Date        string // YYYY-MM-DD
	Equipment   string
	Plate       string
	SKU         string
	ArticleName string
	RawQty      int64
	BillableQty int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Modified    bool
}

// BillingArticleTotal agregado por artículo del mes.
type BillingArticleTotal struct {
	SKU         string
	ArticleName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// BillingSummary totales del mes.
type BillingSummary struct {
	Month         string
	Lines         []BillingLine
	Articles      []BillingArticleTotal
	TotalQuantity int64
	Total         decimal.Decimal
}
