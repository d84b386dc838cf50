package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundRequest entrada de material (Compra o Logística Inversa).
type InboundRequest struct {
	SKU           string           `json:"sku" validate:"required"`
	Tipo          string           `json:"tipo" validate:"required"`
	Cantidad      int64            `json:"cantidad" validate:"required,gt=0"`
	Proveedor     string           `json:"proveedor" validate:"omitempty,max=200"`
	Albaran       string           `json:"albaran" validate:"omitempty,max=100"`
	CosteUnitario *decimal.Decimal `json:"coste_unitario"`
	Periodo       string           `json:"periodo" validate:"omitempty,len=7"`
}

// ConsumptionRequest salida manual de material.
type ConsumptionRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Cantidad int64  `json:"cantidad" validate:"required,gt=0"`
	Motivo   string `json:"motivo" validate:"required,max=300"`
	Periodo  string `json:"periodo" validate:"omitempty,len=7"`
}

// RegularizationRequest ajuste (+/-) o conteo físico.
// En "ajuste" Cantidad es la variación; en "conteo_fisico" el total contado.
type RegularizationRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Modo     string `json:"modo" validate:"required,oneof=ajuste conteo_fisico"`
	Cantidad int64  `json:"cantidad"`
	Motivo   string `json:"motivo" validate:"required,max=300"`
	Periodo  string `json:"periodo" validate:"omitempty,len=7"`
}

// CreateMovementRequest append genérico al ledger.
type CreateMovementRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Tipo     string `json:"tipo" validate:"required,oneof=ENTRADA SALIDA"`
	Cantidad int64  `json:"cantidad" validate:"required,gt=0"`
	Motivo   string `json:"motivo" validate:"required,max=300"`
	Periodo  string `json:"periodo" validate:"omitempty,len=7"`
}

// MovementFilterRequest filtros del listado del ledger.
type MovementFilterRequest struct {
	Periodo string `query:"periodo"`
	SKU     string `query:"sku"`
	Clase   string `query:"clase"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Tipo         string    `json:"tipo"`
	Clase        string    `json:"clase"`
	Cantidad     int64     `json:"cantidad"`
	Motivo       string    `json:"motivo"`
	Usuario      string    `json:"usuario"`
	Periodo      string    `json:"periodo"`
	RefOperacion string    `json:"ref_operacion,omitempty"`
	Fecha        time.Time `json:"fecha"`
}

// RegularizationResponse resultado de una regularización. Movimiento nil si no hubo variación.
type RegularizationResponse struct {
	Movimiento    *MovementResponse `json:"movimiento"`
	Delta         int64             `json:"delta"`
	StockAnterior int64             `json:"stock_anterior"`
	StockNuevo    int64             `json:"stock_nuevo"`
}
