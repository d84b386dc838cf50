package dto

import "time"

// SyncLoadRecord registro de carga enviado por la sincronización externa.
// Fecha admite "YYYY-MM-DD" o RFC3339.
type SyncLoadRecord struct {
	RefCarga   string           `json:"ref_carga" validate:"required,max=100"`
	Fecha      string           `json:"fecha" validate:"required"`
	Equipo     string           `json:"equipo" validate:"omitempty,max=100"`
	Matricula  string           `json:"matricula" validate:"omitempty,max=100"`
	Consumos   map[string]int64 `json:"consumos"`
	Duplicado  *bool            `json:"duplicado"`
	Modificada *bool            `json:"modificada"`
}

// SyncResponse resultado de un lote.
type SyncResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// LoadFilterRequest filtros del listado de cargas.
type LoadFilterRequest struct {
	Month      string `query:"month"`
	Duplicados bool   `query:"duplicados"`
}

// LoadResponse salida de una carga.
type LoadResponse struct {
	RefCarga   string           `json:"ref_carga"`
	Fecha      string           `json:"fecha"`
	Equipo     string           `json:"equipo"`
	Matricula  string           `json:"matricula"`
	Consumos   map[string]int64 `json:"consumos"`
	Duplicado  bool             `json:"duplicado"`
	Modificada bool             `json:"modificada"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
