package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	appinventory "github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

func loadMovements(t *testing.T, f *fixture, ref string) []*entity.Movement {
	t.Helper()
	all, err := f.store.Movements().List(context.Background(), repository.MovementFilter{Class: entity.ClassLoadOut})
	require.NoError(t, err)
	var out []*entity.Movement
	for _, m := range all {
		if m.OperationRef == ref {
			out = append(out, m)
		}
	}
	return out
}

// ── Escenario CIN-N-001 ───────────────────────────────────────────────────────

func TestIngest_CINScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "CIN-N-001", 1000, 200)

	_, err := f.movements.RegisterInbound(ctx, "ana", dto.InboundRequest{SKU: "CIN-N-001", Tipo: "Compra", Cantidad: 50})
	require.NoError(t, err)
	_, err = f.movements.RegisterConsumption(ctx, "ana", dto.ConsumptionRequest{SKU: "CIN-N-001", Cantidad: 30, Motivo: "uso interno"})
	require.NoError(t, err)

	resp, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "CARGA-1", Fecha: "2024-01-15", Consumos: map[string]int64{"CIN-N-001": 900}}})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)

	stock, status := f.stockOf(t, "CIN-N-001")
	assert.Equal(t, int64(120), stock)
	assert.Equal(t, entity.StatusReorder, status)

	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "CARGA-1", Fecha: "2024-01-15", Consumos: map[string]int64{"CIN-N-001": 850}}})
	require.NoError(t, err)

	stock, _ = f.stockOf(t, "CIN-N-001")
	assert.Equal(t, int64(170), stock)
	assert.Len(t, loadMovements(t, f, "CARGA-1"), 1)
}

func TestIngest_ResyncIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 0)
	f.seedArticle(t, "B", 100, 0)
	batch := []dto.SyncLoadRecord{
		{RefCarga: "L1", Fecha: "2024-01-02", Equipo: "F-1", Matricula: "P-1", Consumos: map[string]int64{"A": 3, "B": 0}},
		{RefCarga: "L2", Fecha: "2024-01-03T08:00:00Z", Consumos: map[string]int64{"B": 7}},
	}

	for i := 0; i < 3; i++ {
		_, err := f.ingest.Sync(ctx, batch)
		require.NoError(t, err)
	}

	a, _ := f.stockOf(t, "A")
	b, _ := f.stockOf(t, "B")
	assert.Equal(t, int64(97), a)
	assert.Equal(t, int64(93), b)

	l1 := loadMovements(t, f, "L1")
	require.Len(t, l1, 1, "cantidad 0 no genera salida")
	assert.Equal(t, "Sistema n8n", l1[0].User)
	assert.Equal(t, "Sincronización Google Sheets", l1[0].Reason)
	assert.Equal(t, "2024-01", l1[0].Period)

	load, err := f.store.Loads().GetByRef(ctx, "L1")
	require.NoError(t, err)
	assert.False(t, load.Modified, "reenviar lo mismo no marca modificada")
	assert.Equal(t, "F-1", load.Equipment)
}

func TestIngest_FullReplaceOfConsumptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 0)
	f.seedArticle(t, "B", 100, 0)

	_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-02", Consumos: map[string]int64{"A": 3, "B": 4}}})
	require.NoError(t, err)
	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-02", Consumos: map[string]int64{"A": 5}}})
	require.NoError(t, err)

	a, _ := f.stockOf(t, "A")
	b, _ := f.stockOf(t, "B")
	assert.Equal(t, int64(95), a)
	assert.Equal(t, int64(100), b, "el SKU que desaparece se borra del ledger")

	load, err := f.store.Loads().GetByRef(ctx, "L1")
	require.NoError(t, err)
	assert.True(t, load.Modified, "huella distinta de la original")
	assert.Equal(t, map[string]int64{"A": 5}, load.Consumptions)
}

func TestIngest_UpstreamFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-02", Duplicado: ptr(true), Consumos: map[string]int64{"A": 1}}})
	require.NoError(t, err)
	n, err := f.store.Loads().CountDuplicates(ctx, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// sin flag se conserva el anterior
	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-02", Consumos: map[string]int64{"A": 1}}})
	require.NoError(t, err)
	n, _ = f.store.Loads().CountDuplicates(ctx, "2024-01")
	assert.Equal(t, 1, n)

	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L1", Fecha: "2024-01-02", Duplicado: ptr(false), Modificada: ptr(true), Consumos: map[string]int64{"A": 1}}})
	require.NoError(t, err)
	n, _ = f.store.Loads().CountDuplicates(ctx, "2024-01")
	assert.Zero(t, n)
	load, _ := f.store.Loads().GetByRef(ctx, "L1")
	assert.True(t, load.Modified)
}

func TestIngest_FailureRollsBackWholeBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 0)
	require.NoError(t, f.store.Closings().EnsureOpen(ctx, "2023-12"))
	_, err := f.store.Closings().MarkClosed(ctx, "2023-12", "ana", fixedNow)
	require.NoError(t, err)

	_, err = f.ingest.Sync(ctx, []dto.SyncLoadRecord{
		{RefCarga: "OK", Fecha: "2024-01-02", Consumos: map[string]int64{"A": 10}},
		{RefCarga: "CERRADO", Fecha: "2023-12-30", Consumos: map[string]int64{"A": 10}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)
	var be *domain.BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Index)
	assert.Equal(t, "CERRADO", be.RefCarga)

	load, err := f.store.Loads().GetByRef(ctx, "OK")
	require.NoError(t, err)
	assert.Nil(t, load, "el primer registro también se revierte")
	a, _ := f.stockOf(t, "A")
	assert.Equal(t, int64(100), a)
}

func TestIngest_UnchangedLoadInClosedMonthIsSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 100, 0)

	dic := dto.SyncLoadRecord{RefCarga: "L-DIC", Fecha: "2023-12-20", Equipo: "F-9", Consumos: map[string]int64{"A": 5}}
	_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{dic})
	require.NoError(t, err)
	_, err = f.store.Closings().MarkClosed(ctx, "2023-12", "ana", fixedNow)
	require.NoError(t, err)

	resp, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{
		dic,
		{RefCarga: "L-ENE", Fecha: "2024-01-10", Consumos: map[string]int64{"A": 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	a, _ := f.stockOf(t, "A")
	assert.Equal(t, int64(88), a)
	assert.Len(t, loadMovements(t, f, "L-DIC"), 1)

	cases := map[string]dto.SyncLoadRecord{
		"consumos": {RefCarga: "L-DIC", Fecha: "2023-12-20", Equipo: "F-9", Consumos: map[string]int64{"A": 6}},
		"fecha":    {RefCarga: "L-DIC", Fecha: "2023-12-21", Equipo: "F-9", Consumos: map[string]int64{"A": 5}},
		"equipo":   {RefCarga: "L-DIC", Fecha: "2023-12-20", Equipo: "F-1", Consumos: map[string]int64{"A": 5}},
		"flag":     {RefCarga: "L-DIC", Fecha: "2023-12-20", Equipo: "F-9", Consumos: map[string]int64{"A": 5}, Duplicado: ptr(true)},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{rec})
			assert.ErrorIs(t, err, domain.ErrPeriodClosed)
		})
	}
	a, _ = f.stockOf(t, "A")
	assert.Equal(t, int64(88), a)
}

func TestIngest_ValidationBeforeTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []dto.SyncLoadRecord{
		{RefCarga: "", Fecha: "2024-01-02"},
		{RefCarga: "L", Fecha: "02/01/2024"},
		{RefCarga: "L", Fecha: "2024-01-02", Consumos: map[string]int64{"A": -1}},
		{RefCarga: "L", Fecha: "2024-01-02", Consumos: map[string]int64{" ": 1}},
		{RefCarga: "L|1", Fecha: "2024-01-02"},
		{RefCarga: "L", Fecha: "2024-01-02", Consumos: map[string]int64{"A|B": 1}},
	}
	for _, c := range cases {
		_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "BIEN", Fecha: "2024-01-01"}, c})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", c)
		var be *domain.BatchError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, 1, be.Index)
	}
	loads, err := f.ingest.List(ctx, dto.LoadFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, loads)
}

func TestIngest_EmptyBatch(t *testing.T) {
	f := newFixture(t)
	resp, err := f.ingest.Sync(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Count)
}

func TestIngest_OrphanSKUIsStoredButIgnoredByStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 10, 0)

	_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{{RefCarga: "L", Fecha: "2024-01-05", Consumos: map[string]int64{"A": 1, "DESCONOCIDO": 4}}})
	require.NoError(t, err)

	assert.Len(t, loadMovements(t, f, "L"), 2)
	a, _ := f.stockOf(t, "A")
	assert.Equal(t, int64(9), a)
}

func TestIngest_OrphanSKUIsLogged(t *testing.T) {
	store := memory.NewStore()
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	ingest := appinventory.NewIngestLoadsUseCase(memory.NewTxRunner(store), store.Loads(), "Sistema n8n", "Sincronización Google Sheets", log).WithClock(clock)

	_, err := ingest.Sync(context.Background(), []dto.SyncLoadRecord{{RefCarga: "L", Fecha: "2024-01-05", Consumos: map[string]int64{"DESCONOCIDO": 4}}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"sku":"DESCONOCIDO"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestListLoads_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ingest.Sync(ctx, []dto.SyncLoadRecord{
		{RefCarga: "E1", Fecha: "2024-01-05", Duplicado: ptr(true)},
		{RefCarga: "E2", Fecha: "2024-01-06"},
		{RefCarga: "D1", Fecha: "2023-12-06", Duplicado: ptr(true)},
	})
	require.NoError(t, err)

	jan, err := f.ingest.List(ctx, dto.LoadFilterRequest{Month: "2024-01"})
	require.NoError(t, err)
	require.Len(t, jan, 2)
	assert.Equal(t, "E2", jan[0].RefCarga, "más reciente primero")

	dups, err := f.ingest.List(ctx, dto.LoadFilterRequest{Duplicados: true})
	require.NoError(t, err)
	assert.Len(t, dups, 2)

	_, err = f.ingest.List(ctx, dto.LoadFilterRequest{Month: "enero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
