package memory

import (
	"context"

	appclosing "github.com/jhoicas/envos-stock/internal/application/closing"
	appinventory "github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var (
	_ appinventory.TxRunner = (*TxRunner)(nil)
	_ appclosing.TxRunner   = (*TxRunner)(nil)
)

// TxRunner transacciones en memoria: bloquea el Store, trabaja sobre un clon y
// lo publica solo si fn no devuelve error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (t *TxRunner) begin(ctx context.Context, fn func(v txView) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	v := txView{st: t.store.st.clone()}
	if err := fn(v); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.st = v.st
	return nil
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	loadRepo repository.LoadRepository,
	closingRepo repository.ClosingRepository,
	articleRepo repository.ArticleRepository,
) error) error {
	return t.begin(ctx, func(v txView) error {
		return fn(&MovementRepo{db: v}, &LoadRepo{db: v}, &ClosingRepo{db: v}, &ArticleRepo{db: v})
	})
}

// RunClosing implementa closing.TxRunner.
func (t *TxRunner) RunClosing(ctx context.Context, fn func(
	loadRepo repository.LoadRepository,
	closingRepo repository.ClosingRepository,
) error) error {
	return t.begin(ctx, func(v txView) error {
		return fn(&LoadRepo{db: v}, &ClosingRepo{db: v})
	})
}
