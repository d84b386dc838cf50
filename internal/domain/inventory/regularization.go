package inventory

import (
	"fmt"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// Modos de regularización.
const (
	RegularizationAdjustment    = "ajuste"
	RegularizationPhysicalCount = "conteo_fisico"
)

// RegularizationDelta calcula la variación de stock a registrar.
// En "ajuste" qty es la propia variación (no puede ser cero); en "conteo_fisico"
// qty es el total contado y la variación es qty - current (cero = nada que hacer).
func RegularizationDelta(mode string, qty, current int64) (int64, error) {
	switch mode {
	case RegularizationAdjustment:
		if qty == 0 {
			return 0, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
		}
		return qty, nil
	case RegularizationPhysicalCount:
		if qty < 0 {
			return 0, fmt.Errorf("%w: el conteo físico no puede ser negativo", domain.ErrInvalidInput)
		}
		return qty - current, nil
	default:
		return 0, fmt.Errorf("%w: modo de regularización %q", domain.ErrInvalidInput, mode)
	}
}

// RegularizationMovement traduce una variación a su tipo y cantidad positiva.
func RegularizationMovement(delta int64) (movType string, qty int64) {
	if delta > 0 {
		return entity.MovementIn, delta
	}
	return entity.MovementOut, -delta
}

// RegularizationReason motivo estándar de un ajuste.
func RegularizationReason(reason string) string {
	return entity.RegularizationMarker + ": " + reason
}
