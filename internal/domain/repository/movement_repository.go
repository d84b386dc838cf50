package repository

import (
	"context"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// MovementFilter filtros opcionales del ledger. Vacío = sin filtro.
type MovementFilter struct {
	Period string
	SKU    string
	Class  string
}

// MovementRepository define el puerto del ledger (append-only).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// List devuelve los movimientos del filtro, más recientes primero.
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
	// DeleteByOperationRef borra los movimientos de una carga. Solo lo usa la sincronización.
	DeleteByOperationRef(ctx context.Context, ref string) (int64, error)
}
