package entity

import "github.com/shopspring/decimal"

// Situaciones de stock. "CRÍTICO" forma parte del dominio pero ninguna regla la asigna.
const (
	StatusInStock  = "Con stock"
	StatusReorder  = "Pedir a proveedor"
	StatusCritical = "CRÍTICO"
	StatusNoStock  = "Sin stock"
)

// InventoryItem vista calculada de un artículo.
type InventoryItem struct {
	Article             Article
	TotalIn             int64
	TotalOut            int64
	TotalManualOut      int64
	TotalLoadOut        int64
	TotalRegularizedIn  int64
	TotalRegularizedOut int64
	CurrentStock        int64
	Status              string
	StockValue          decimal.Decimal // CurrentStock × LastCost
}

// ReplenishmentSuggestion sugerencia de pedido para un artículo.
type ReplenishmentSuggestion struct {
	SKU            string
	Name           string
	Supplier       string
	CurrentStock   int64
	SafetyStock    int64
	WeeklyAvg      float64
	DailyAvg       float64
	LeadTimeDays   int
	TargetStock    int64
	SuggestedOrder int64
	Status         string
}
