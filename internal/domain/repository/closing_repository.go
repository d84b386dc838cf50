package repository

import (
	"context"
	"time"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// ClosingRepository define el puerto de persistencia de cierres mensuales.
type ClosingRepository interface {
	// Get devuelve (nil, nil) si el mes no tiene registro (equivale a OPEN).
	Get(ctx context.Context, month string) (*entity.MonthClosing, error)
	List(ctx context.Context) ([]*entity.MonthClosing, error)
	// EnsureOpen crea el registro OPEN si no existe. Idempotente.
	EnsureOpen(ctx context.Context, month string) error
	// MarkClosed cierra el mes solo si sigue OPEN. Devuelve false si otro lo cerró antes.
	MarkClosed(ctx context.Context, month, by string, at time.Time) (bool, error)
}
