package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrPeriodClosed      = errors.New("el periodo está cerrado")
	ErrHistoricalPeriod  = errors.New("solo se puede modificar el mes en curso")
	ErrPendingDuplicates = errors.New("existen cargas duplicadas pendientes")
	ErrUnavailable       = errors.New("almacenamiento no disponible, reintente")
)

// PendingDuplicatesError rechazo del cierre de mes con el número de duplicados pendientes.
type PendingDuplicatesError struct {
	Month string
	Count int
}

func (e *PendingDuplicatesError) Error() string {
	return fmt.Sprintf("mes %s: %d cargas duplicadas pendientes", e.Month, e.Count)
}

// Is permite errors.Is(err, ErrPendingDuplicates).
func (e *PendingDuplicatesError) Is(target error) bool {
	return target == ErrPendingDuplicates
}

// BatchError identifica el registro que abortó un lote de ingestión.
// El lote completo se revierte.
type BatchError struct {
	RefCarga string
	Index    int
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("lote abortado en registro %d (ref_carga %q): %v", e.Index, e.RefCarga, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
