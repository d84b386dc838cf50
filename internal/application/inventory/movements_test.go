package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	appinventory "github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

func TestRegisterInbound_ReasonAndCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 0, 0)

	m, err := f.movements.RegisterInbound(ctx, "ana", dto.InboundRequest{
		SKU: "A", Tipo: appinventory.InboundPurchase, Cantidad: 50, Proveedor: "Prov", Albaran: "ALB-1",
		CosteUnitario: ptr(decimal.RequireFromString("0.75")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Compra: Prov ALB-1", m.Motivo)
	assert.Equal(t, entity.ClassInbound, m.Clase)
	assert.Equal(t, "2024-01", m.Periodo)
	assert.Equal(t, "ana", m.Usuario)

	a, err := f.store.Articles().GetBySKU(ctx, "A")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.75").Equal(a.LastCost))

	m, err = f.movements.RegisterInbound(ctx, "ana", dto.InboundRequest{SKU: "A", Tipo: appinventory.InboundReverse, Cantidad: 1})
	require.NoError(t, err)
	assert.Equal(t, "Logística Inversa:", m.Motivo)

	_, err = f.movements.RegisterInbound(ctx, "ana", dto.InboundRequest{SKU: "A", Tipo: "Regalo", Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 10, 0)

	_, err := f.movements.Append(ctx, appinventory.MovementInput{SKU: "A", Type: entity.MovementOut, Quantity: 0, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.Append(ctx, appinventory.MovementInput{SKU: "A", Type: "TRASPASO", Quantity: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.Append(ctx, appinventory.MovementInput{SKU: "X", Type: entity.MovementIn, Quantity: 1, Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.movements.Append(ctx, appinventory.MovementInput{SKU: "A", Type: entity.MovementIn, Quantity: 1, Reason: "x", Period: "2024/01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_RejectsInactiveArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 10, 0)
	_, err := f.catalog.ToggleActive(ctx, "A")
	require.NoError(t, err)

	_, err = f.movements.RegisterConsumption(ctx, "ana", dto.ConsumptionRequest{SKU: "A", Cantidad: 1, Motivo: "uso"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_RejectsClosedPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 10, 0)
	require.NoError(t, f.store.Closings().EnsureOpen(ctx, "2023-12"))
	ok, err := f.store.Closings().MarkClosed(ctx, "2023-12", "ana", fixedNow)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.movements.RegisterConsumption(ctx, "ana", dto.ConsumptionRequest{SKU: "A", Cantidad: 1, Motivo: "uso", Periodo: "2023-12"})
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)

	stock, _ := f.stockOf(t, "A")
	assert.Equal(t, int64(10), stock, "el ledger no cambia")
}

func TestRegisterConsumption_RejectsRegularizationReason(t *testing.T) {
	f := newFixture(t)
	f.seedArticle(t, "A", 10, 0)

	_, err := f.movements.RegisterConsumption(context.Background(), "ana", dto.ConsumptionRequest{SKU: "A", Cantidad: 1, Motivo: "Regularización: x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegularize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 10)

	r, err := f.movements.Regularize(ctx, "ana", dto.RegularizationRequest{SKU: "A", Modo: "ajuste", Cantidad: -5, Motivo: "rotura"})
	require.NoError(t, err)
	require.NotNil(t, r.Movimiento)
	assert.Equal(t, entity.MovementOut, r.Movimiento.Tipo)
	assert.Equal(t, int64(5), r.Movimiento.Cantidad)
	assert.Equal(t, "Regularización: rotura", r.Movimiento.Motivo)
	assert.Equal(t, entity.ClassRegularization, r.Movimiento.Clase)
	assert.Equal(t, int64(95), r.StockNuevo)

	r, err = f.movements.Regularize(ctx, "ana", dto.RegularizationRequest{SKU: "A", Modo: "conteo_fisico", Cantidad: 120, Motivo: "inventario anual"})
	require.NoError(t, err)
	assert.Equal(t, int64(25), r.Delta)
	assert.Equal(t, entity.MovementIn, r.Movimiento.Tipo)

	r, err = f.movements.Regularize(ctx, "ana", dto.RegularizationRequest{SKU: "A", Modo: "conteo_fisico", Cantidad: 120, Motivo: "recuento"})
	require.NoError(t, err)
	assert.Nil(t, r.Movimiento, "conteo igual al stock no genera movimiento")
	assert.Zero(t, r.Delta)

	_, err = f.movements.Regularize(ctx, "ana", dto.RegularizationRequest{SKU: "A", Modo: "ajuste", Cantidad: 0, Motivo: "nada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stock, _ := f.stockOf(t, "A")
	assert.Equal(t, int64(120), stock)
}

func TestListMovements_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 10)
	f.seedArticle(t, "B", 100, 10)

	_, err := f.movements.RegisterInbound(ctx, "ana", dto.InboundRequest{SKU: "A", Tipo: "Compra", Cantidad: 5})
	require.NoError(t, err)
	_, err = f.movements.RegisterConsumption(ctx, "ana", dto.ConsumptionRequest{SKU: "B", Cantidad: 3, Motivo: "uso", Periodo: "2023-11"})
	require.NoError(t, err)
	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-10", Consumos: map[string]int64{"A": 2}}})
	require.NoError(t, err)

	all, err := f.movements.List(ctx, dto.MovementFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byClass, err := f.movements.List(ctx, dto.MovementFilterRequest{Clase: entity.ClassLoadOut})
	require.NoError(t, err)
	require.Len(t, byClass, 1)
	assert.Equal(t, "L1", byClass[0].RefOperacion)

	byPeriod, err := f.movements.List(ctx, dto.MovementFilterRequest{Periodo: "2023-11"})
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)
	assert.Equal(t, "B", byPeriod[0].SKU)

	_, err = f.movements.List(ctx, dto.MovementFilterRequest{Clase: "OTRA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
