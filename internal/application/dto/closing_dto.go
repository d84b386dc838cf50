package dto

import "time"

// ClosingResponse estado de cierre de un mes con su checklist.
type ClosingResponse struct {
	Month                string     `json:"month"`
	Label                string     `json:"label"`
	Status               string     `json:"status"`
	ClosedBy             string     `json:"closed_by,omitempty"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`
	DuplicadosPendientes int        `json:"duplicados_pendientes"`
	PuedeCerrar          bool       `json:"puede_cerrar"`
}
