package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveArticleRequest alta o edición de un artículo por SKU.
// StockInicial solo se admite en el alta; en edición debe omitirse o coincidir.
type SaveArticleRequest struct {
	SKU            string           `json:"sku" validate:"required,max=64"`
	Nombre         string           `json:"nombre" validate:"required,max=200"`
	Tipo           string           `json:"tipo" validate:"omitempty,oneof=Nuevo Usado"`
	Unidad         string           `json:"unidad" validate:"omitempty,max=32"`
	StockInicial   *int64           `json:"stock_inicial" validate:"omitempty,min=0"`
	StockSeguridad int64            `json:"stock_seguridad" validate:"min=0"`
	LeadTimeDias   int              `json:"lead_time_dias" validate:"min=0,max=365"`
	PrecioVenta    decimal.Decimal  `json:"precio_venta"`
	UltimoCoste    *decimal.Decimal `json:"ultimo_coste"`
	Proveedor      string           `json:"proveedor" validate:"omitempty,max=200"`
	ImagenURL      string           `json:"imagen_url" validate:"omitempty,url"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	SKU            string          `json:"sku"`
	Nombre         string          `json:"nombre"`
	Tipo           string          `json:"tipo"`
	Unidad         string          `json:"unidad"`
	StockInicial   int64           `json:"stock_inicial"`
	StockSeguridad int64           `json:"stock_seguridad"`
	LeadTimeDias   int             `json:"lead_time_dias"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	UltimoCoste    decimal.Decimal `json:"ultimo_coste"`
	Proveedor      string          `json:"proveedor,omitempty"`
	ImagenURL      string          `json:"imagen_url,omitempty"`
	Activo         bool            `json:"activo"`
	FechaAlta      time.Time       `json:"fecha_alta"`
}
