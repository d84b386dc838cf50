package dto

import "github.com/shopspring/decimal"

// PeriodStatDTO devengado de un periodo.
type PeriodStatDTO struct {
	Periodo   string          `json:"periodo"`
	Label     string          `json:"label"`
	Unidades  int64           `json:"unidades"`
	Devengado decimal.Decimal `json:"devengado"`
	Articulos int             `json:"articulos"`
}

// StatsResponse devengado del mes en curso e histórico.
type StatsResponse struct {
	Periodo   string          `json:"periodo"`
	Devengado decimal.Decimal `json:"devengado"`
	Unidades  int64           `json:"unidades"`
	Historico []PeriodStatDTO `json:"historico"`
}
