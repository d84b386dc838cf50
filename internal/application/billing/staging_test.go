package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

var fixedNow = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

func newStaging(t *testing.T) (*appbilling.StagingUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Articles().Create(ctx, &entity.Article{SKU: "A", Name: "Cinta", SalePrice: decimal.RequireFromString("2"), Active: true}))
	require.NoError(t, store.Articles().Create(ctx, &entity.Article{SKU: "B", Name: "Film", SalePrice: decimal.RequireFromString("5"), Active: true}))
	loads := []entity.OperationalLoad{
		{RefCarga: "F1", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Consumptions: map[string]int64{"A": 10, "B": 1}},
		{RefCarga: "F2", Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Consumptions: map[string]int64{"A": 4, "B": 0}},
		{RefCarga: "E1", Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Consumptions: map[string]int64{"A": 7}},
	}
	for i := range loads {
		require.NoError(t, store.Loads().Upsert(ctx, &loads[i]))
	}
	uc := appbilling.NewStagingUseCase(store.Loads(), store.Articles(), store.Closings(), memory.NewOverrideStore(), logger.Nop()).WithClock(clock)
	return uc, store
}

func TestStaging_Get(t *testing.T) {
	uc, _ := newStaging(t)

	resp, err := uc.Get(context.Background(), "2024-02")
	require.NoError(t, err)
	assert.True(t, resp.Editable)
	assert.Equal(t, entity.ClosingOpen, resp.Estado)
	assert.Len(t, resp.Lineas, 3)
	assert.Equal(t, int64(15), resp.TotalCantidad)
	assert.True(t, decimal.RequireFromString("33").Equal(resp.Total))

	resp, err = uc.Get(context.Background(), "2024-01")
	require.NoError(t, err)
	assert.False(t, resp.Editable, "mes histórico")
	assert.Len(t, resp.Lineas, 1)

	_, err = uc.Get(context.Background(), "febrero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStaging_OverridePrecedenceAndRevert(t *testing.T) {
	uc, store := newStaging(t)
	ctx := context.Background()

	line, err := uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "F1", SKU: "A", Cantidad: ptr(int64(6))})
	require.NoError(t, err)
	assert.Equal(t, int64(10), line.CantidadOriginal)
	assert.Equal(t, int64(6), line.CantidadFacturable)
	assert.True(t, line.Modificada)

	resp, err := uc.Get(ctx, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.TotalCantidad)

	line, err = uc.ClearOverride(ctx, "F1", "A")
	require.NoError(t, err)
	assert.Equal(t, int64(10), line.CantidadFacturable)
	assert.False(t, line.Modificada)

	// el ledger no se toca
	movs, err := store.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStaging_OverrideRules(t *testing.T) {
	uc, store := newStaging(t)
	ctx := context.Background()

	_, err := uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "F1", SKU: "A", Cantidad: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "NOPE", SKU: "A", Cantidad: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "F2", SKU: "B", Cantidad: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cantidad 0 no es línea facturable")

	_, err = uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "E1", SKU: "A", Cantidad: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrHistoricalPeriod)

	line, err := uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "F2", SKU: "A", Cantidad: ptr(int64(0))})
	require.NoError(t, err)
	assert.Zero(t, line.CantidadFacturable)

	require.NoError(t, store.Closings().EnsureOpen(ctx, "2024-02"))
	_, err = store.Closings().MarkClosed(ctx, "2024-02", "ana", fixedNow)
	require.NoError(t, err)

	_, err = uc.SetOverride(ctx, dto.SetOverrideRequest{LoadUID: "F1", SKU: "A", Cantidad: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)
	_, err = uc.ClearOverride(ctx, "F2", "A")
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)

	resp, err := uc.Get(ctx, "2024-02")
	require.NoError(t, err)
	assert.False(t, resp.Editable)
	assert.Equal(t, entity.ClosingClosed, resp.Estado)
}
