package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

func TestInventory_FiltersAndSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 0, 5)
	f.seedArticle(t, "B", 3, 5)
	f.seedArticle(t, "C", 50, 5)
	_, err := f.catalog.ToggleActive(ctx, "C")
	require.NoError(t, err)

	resp, err := f.status.Inventory(ctx, dto.InventoryFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 3)
	assert.Equal(t, 1, resp.Resumen[entity.StatusInStock])

	resp, err = f.status.Inventory(ctx, dto.InventoryFilterRequest{Activos: true})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 0, resp.Resumen[entity.StatusInStock])
	assert.Equal(t, 1, resp.Resumen[entity.StatusNoStock])

	resp, err = f.status.Inventory(ctx, dto.InventoryFilterRequest{Situacion: entity.StatusReorder})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "B", resp.Items[0].SKU)
	assert.Equal(t, 1, resp.Resumen[entity.StatusNoStock], "el resumen no depende del filtro de situación")

	_, err = f.status.Inventory(ctx, dto.InventoryFilterRequest{Situacion: "Roto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_Priority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedArticle(t, "A", 0, 5)
	f.seedArticle(t, "B", 3, 50)
	f.seedArticle(t, "C", 500, 5)

	list, err := f.status.Replenishment(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].SKU)
	assert.Equal(t, 1, list[0].Prioridad)
	assert.Equal(t, int64(47), list[0].PedidoSugerido)
	assert.Equal(t, "A", list[1].SKU)
	assert.Equal(t, int64(5), list[1].PedidoSugerido)
}
