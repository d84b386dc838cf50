package closing

import (
	"context"

	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

// TxRunner ejecuta el cierre de mes en una transacción: recuento de duplicados y
// actualización condicional ven el mismo estado.
type TxRunner interface {
	RunClosing(ctx context.Context, fn func(
		loadRepo repository.LoadRepository,
		closingRepo repository.ClosingRepository,
	) error) error
}
