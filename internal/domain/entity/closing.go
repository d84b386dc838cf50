package entity

import "time"

// Estados del cierre mensual. CLOSED es terminal.
const (
	ClosingOpen   = "OPEN"
	ClosingClosed = "CLOSED"
)

// MonthClosing estado de cierre de un mes (como mucho uno por mes).
type MonthClosing struct {
	Month    string
	Status   string
	ClosedBy string
	ClosedAt *time.Time
}

// IsClosed indica si el mes ya está cerrado.
func (c *MonthClosing) IsClosed() bool {
	return c != nil && c.Status == ClosingClosed
}
