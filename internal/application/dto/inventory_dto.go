package dto

import "github.com/shopspring/decimal"

// InventoryFilterRequest filtros de la vista de inventario.
type InventoryFilterRequest struct {
	Activos   bool   `query:"activos"`
	Situacion string `query:"situacion"`
}

// InventoryItemResponse stock calculado de un artículo.
type InventoryItemResponse struct {
	SKU                  string          `json:"sku"`
	Nombre               string          `json:"nombre"`
	Tipo                 string          `json:"tipo"`
	Unidad               string          `json:"unidad"`
	Activo               bool            `json:"activo"`
	StockInicial         int64           `json:"stock_inicial"`
	StockSeguridad       int64           `json:"stock_seguridad"`
	TotalEntradas        int64           `json:"total_entradas"`
	TotalSalidas         int64           `json:"total_salidas"`
	TotalSalidasManuales int64           `json:"total_salidas_manuales"`
	TotalSalidasCargas   int64           `json:"total_salidas_cargas"`
	TotalRegularizacion  int64           `json:"total_regularizacion"`
	StockActual          int64           `json:"stock_actual"`
	Situacion            string          `json:"situacion"`
	PrecioVenta          decimal.Decimal `json:"precio_venta"`
	ValorStock           decimal.Decimal `json:"valor_stock"`
}

// InventoryResponse vista de inventario con contadores por situación.
type InventoryResponse struct {
	Items      []InventoryItemResponse `json:"items"`
	Resumen    map[string]int          `json:"resumen"`
	ValorTotal decimal.Decimal         `json:"valor_total"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido.
type ReplenishmentSuggestionDTO struct {
	SKU            string  `json:"sku"`
	Nombre         string  `json:"nombre"`
	Proveedor      string  `json:"proveedor,omitempty"`
	StockActual    int64   `json:"stock_actual"`
	StockSeguridad int64   `json:"stock_seguridad"`
	ConsumoSemanal float64 `json:"consumo_semanal"`
	ConsumoDiario  float64 `json:"consumo_diario"`
	LeadTimeDias   int     `json:"lead_time_dias"`
	StockObjetivo  int64   `json:"stock_objetivo"`
	PedidoSugerido int64   `json:"pedido_sugerido"`
	Situacion      string  `json:"situacion"`
	Prioridad      int     `json:"prioridad"`
}
