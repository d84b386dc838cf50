// Package closing implementa la máquina de estados del cierre mensual
// (OPEN -> CLOSED), bloqueada mientras existan cargas duplicadas en el mes.
package closing

import (
	"fmt"
	"time"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// PendingDuplicates cuenta las cargas del mes marcadas como duplicadas.
func PendingDuplicates(month string, loads []entity.OperationalLoad) int {
	n := 0
	for _, l := range loads {
		if l.Duplicate && l.Month() == month {
			n++
		}
	}
	return n
}

// Transition valida el cierre y devuelve el nuevo registro. No muta rec.
// Un mes ya cerrado es un conflicto; con duplicados pendientes devuelve
// *domain.PendingDuplicatesError.
func Transition(rec entity.MonthClosing, pending int, by string, at time.Time) (entity.MonthClosing, error) {
	if rec.Status == entity.ClosingClosed {
		return rec, fmt.Errorf("%w: el mes %s ya está cerrado", domain.ErrConflict, rec.Month)
	}
	if pending > 0 {
		return rec, &domain.PendingDuplicatesError{Month: rec.Month, Count: pending}
	}
	closedAt := at
	return entity.MonthClosing{
		Month:    rec.Month,
		Status:   entity.ClosingClosed,
		ClosedBy: by,
		ClosedAt: &closedAt,
	}, nil
}
