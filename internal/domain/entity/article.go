package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo.
const (
	ArticleTypeNew  = "Nuevo"
	ArticleTypeUsed = "Usado"
)

// Article representa un consumible del catálogo.
// SKU, InitialStock y CreatedOn quedan fijos tras la creación.
type Article struct {
	SKU          string
	Name         string
	Type         string // Nuevo | Usado
	Unit         string
	InitialStock int64
	SafetyStock  int64
	LeadTimeDays int
	SalePrice    decimal.Decimal
	LastCost     decimal.Decimal
	Supplier     string
	ImageURL     string
	Active       bool
	CreatedOn    time.Time
}

// ValidArticleType indica si t es un tipo de artículo admitido.
func ValidArticleType(t string) bool {
	return t == ArticleTypeNew || t == ArticleTypeUsed
}
