package entity

import (
	"strings"
	"time"
)

// Tipos de movimiento. El signo sobre el stock lo da únicamente el tipo.
const (
	MovementIn  = "ENTRADA"
	MovementOut = "SALIDA"
)

// Clases derivadas de un movimiento.
const (
	ClassInbound        = "ENTRADA"
	ClassManualOut      = "SALIDA_MANUAL"
	ClassLoadOut        = "SALIDA_CARGA"
	ClassRegularization = "REGULARIZACION"
)

// RegularizationMarker prefijo de motivo que identifica un ajuste.
const RegularizationMarker = "Regularización"

// Movement evento del ledger. Nunca se actualiza; solo la sincronización de cargas
// borra (por OperationRef) para reinsertar.
type Movement struct {
	ID           string
	SKU          string
	Type         string // ENTRADA | SALIDA
	Quantity     int64  // siempre > 0
	Reason       string
	User         string
	Period       string // YYYY-MM
	OperationRef string // ref_carga cuando viene de una carga
	CreatedAt    time.Time
}

// Class clasifica el movimiento: carga, regularización, entrada o salida manual.
func (m Movement) Class() string {
	switch {
	case m.OperationRef != "":
		return ClassLoadOut
	case strings.Contains(m.Reason, RegularizationMarker):
		return ClassRegularization
	case m.Type == MovementIn:
		return ClassInbound
	default:
		return ClassManualOut
	}
}

// ValidMovementClass indica si c es una clase conocida.
func ValidMovementClass(c string) bool {
	switch c {
	case ClassInbound, ClassManualOut, ClassLoadOut, ClassRegularization:
		return true
	}
	return false
}
