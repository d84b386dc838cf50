package repository

import (
	"context"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// LoadFilter filtros del listado de cargas.
type LoadFilter struct {
	Month         string
	OnlyDuplicate bool
}

// LoadRepository define el puerto de persistencia de cargas operativas.
type LoadRepository interface {
	List(ctx context.Context, f LoadFilter) ([]*entity.OperationalLoad, error)
	// GetByRef devuelve (nil, nil) si no existe.
	GetByRef(ctx context.Context, ref string) (*entity.OperationalLoad, error)
	// GetForUpdate igual que GetByRef pero bloquea la fila dentro de la transacción.
	GetForUpdate(ctx context.Context, ref string) (*entity.OperationalLoad, error)
	// Upsert inserta o reemplaza la carga completa (consumos incluidos).
	Upsert(ctx context.Context, l *entity.OperationalLoad) error
	CountDuplicates(ctx context.Context, month string) (int, error)
}
