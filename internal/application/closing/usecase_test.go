package closing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclosing "github.com/jhoicas/envos-stock/internal/application/closing"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/envos-stock/pkg/logger"
)

var fixedNow = time.Date(2024, 2, 3, 9, 30, 0, 0, time.UTC)

func newUseCase(t *testing.T) (*appclosing.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := appclosing.NewUseCase(memory.NewTxRunner(store), store.Closings(), store.Loads(), logger.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return uc, store
}

func addLoad(t *testing.T, store *memory.Store, ref string, day time.Time, dup bool) {
	t.Helper()
	require.NoError(t, store.Loads().Upsert(context.Background(), &entity.OperationalLoad{RefCarga: ref, Date: day, Duplicate: dup}))
}

func TestClose_BlockedByDuplicates(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	addLoad(t, store, "D1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true)
	addLoad(t, store, "D2", time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), true)
	addLoad(t, store, "OK", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), false)

	_, err := uc.Close(ctx, "2024-01", "ana")
	require.Error(t, err)
	var pe *domain.PendingDuplicatesError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Count)
	assert.Equal(t, "2024-01", pe.Month)

	st, err := uc.Status(ctx, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, entity.ClosingOpen, st.Status, "el rechazo no cambia el estado")
	assert.Equal(t, 2, st.DuplicadosPendientes)
	assert.False(t, st.PuedeCerrar)
}

func TestClose_OK_ThenTerminal(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	addLoad(t, store, "OK", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), false)
	addLoad(t, store, "FEB", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true)

	resp, err := uc.Close(ctx, "2024-01", "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.ClosingClosed, resp.Status)
	assert.Equal(t, "ana", resp.ClosedBy)
	require.NotNil(t, resp.ClosedAt)
	assert.Equal(t, fixedNow, *resp.ClosedAt)

	_, err = uc.Close(ctx, "2024-01", "luis")
	assert.ErrorIs(t, err, domain.ErrConflict)

	st, err := uc.Status(ctx, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, "ana", st.ClosedBy)
}

func TestClose_RejectsFutureAndInvalidMonth(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Close(context.Background(), "2024-03", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Close(context.Background(), "2024-1", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClose_ConcurrentOnlyOneWins(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Close(ctx, "2024-01", "ana")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestList_IncludesCurrentMonth(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	require.NoError(t, store.Closings().EnsureOpen(ctx, "2023-11"))
	require.NoError(t, store.Closings().EnsureOpen(ctx, "2024-01"))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-02", list[0].Month)
	assert.Equal(t, "2024 - Febrero", list[0].Label)
	assert.Equal(t, "2024-01", list[1].Month)
	assert.Equal(t, "2023-11", list[2].Month)
}
