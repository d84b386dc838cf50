package inventory

import (
	"context"

	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		loadRepo repository.LoadRepository,
		closingRepo repository.ClosingRepository,
		articleRepo repository.ArticleRepository,
	) error) error
}
