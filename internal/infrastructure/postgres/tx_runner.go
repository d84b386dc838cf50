package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/envos-stock/internal/application/closing"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ closing.TxRunner = (*TxRunner)(nil)

var tracer = otel.Tracer("envos-stock/postgres")

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	loadRepo repository.LoadRepository,
	closingRepo repository.ClosingRepository,
	articleRepo repository.ArticleRepository,
) error) error {
	return r.inTx(ctx, "postgres.tx.inventory", func(q Querier) error {
		return fn(NewMovementRepository(q), NewLoadRepository(q), NewClosingRepository(q), NewArticleRepository(q))
	})
}

// RunClosing inicia una transacción con los repos que necesita el cierre de mes.
func (r *TxRunner) RunClosing(ctx context.Context, fn func(
	loadRepo repository.LoadRepository,
	closingRepo repository.ClosingRepository,
) error) error {
	return r.inTx(ctx, "postgres.tx.closing", func(q Querier) error {
		return fn(NewLoadRepository(q), NewClosingRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, name string, fn func(q Querier) error) error {
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "begin")
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rollback")
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		span.SetStatus(codes.Error, "commit")
		return mapError("commit transaction", err)
	}
	return nil
}
