package dto

import "github.com/shopspring/decimal"

// SetOverrideRequest fija la cantidad facturable de una línea (load_uid, sku).
type SetOverrideRequest struct {
	LoadUID  string `json:"load_uid" validate:"required"`
	SKU      string `json:"sku" validate:"required"`
	Cantidad *int64 `json:"cantidad" validate:"required,min=0"`
}

// BillingLineResponse línea de staging.
type BillingLineResponse struct {
	LoadUID            string          `json:"load_uid"`
	Fecha              string          `json:"fecha"`
	Equipo             string          `json:"equipo"`
	Matricula          string          `json:"matricula"`
	SKU                string          `json:"sku"`
	Articulo           string          `json:"articulo"`
	CantidadOriginal   int64           `json:"cantidad_original"`
	CantidadFacturable int64           `json:"cantidad_facturable"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Modificada         bool            `json:"is_modified"`
}

// BillingArticleResponse total por artículo.
type BillingArticleResponse struct {
	SKU            string          `json:"sku"`
	Articulo       string          `json:"articulo"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// BillingResponse staging del mes.
type BillingResponse struct {
	Month         string                   `json:"month"`
	Estado        string                   `json:"estado"`
	Editable      bool                     `json:"editable"`
	Lineas        []BillingLineResponse    `json:"lineas"`
	Articulos     []BillingArticleResponse `json:"articulos"`
	TotalCantidad int64                    `json:"total_cantidad"`
	Total         decimal.Decimal          `json:"total"`
}
