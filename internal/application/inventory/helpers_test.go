package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

var fixedNow = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	store     *memory.Store
	catalog   *appinventory.CatalogUseCase
	movements *appinventory.MovementUseCase
	status    *appinventory.StatusUseCase
	ingest    *appinventory.IngestLoadsUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	log := logger.Nop()
	return &fixture{
		store:     store,
		catalog:   appinventory.NewCatalogUseCase(store.Articles(), log).WithClock(clock),
		movements: appinventory.NewMovementUseCase(tx, store.Movements(), store.Articles(), log).WithClock(clock),
		status:    appinventory.NewStatusUseCase(store.Articles(), store.Movements()).WithClock(clock),
		ingest:    appinventory.NewIngestLoadsUseCase(tx, store.Loads(), "Sistema n8n", "Sincronización Google Sheets", log).WithClock(clock),
	}
}

func (f *fixture) seedArticle(t *testing.T, sku string, initial, safety int64) {
	t.Helper()
	require.NoError(t, f.store.Articles().Create(context.Background(), &entity.Article{
		SKU:          sku,
		Name:         "Artículo " + sku,
		Type:         entity.ArticleTypeNew,
		InitialStock: initial,
		SafetyStock:  safety,
		SalePrice:    decimal.RequireFromString("2.50"),
		LastCost:     decimal.NewFromInt(1),
		Active:       true,
		CreatedOn:    fixedNow,
	}))
}

func (f *fixture) stockOf(t *testing.T, sku string) (int64, string) {
	t.Helper()
	return stockFrom(t, f.store, sku)
}

func stockFrom(t *testing.T, store *memory.Store, sku string) (int64, string) {
	t.Helper()
	uc := appinventory.NewStatusUseCase(store.Articles(), store.Movements())
	resp, err := uc.Inventory(context.Background(), dtoAll)
	require.NoError(t, err)
	for _, it := range resp.Items {
		if it.SKU == sku {
			return it.StockActual, it.Situacion
		}
	}
	t.Fatalf("sku %s no encontrado", sku)
	return 0, ""
}

func ptr[T any](v T) *T { return &v }
