package closing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/closing"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

func TestPendingDuplicates(t *testing.T) {
	loads := []entity.OperationalLoad{
		{RefCarga: "1", Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Duplicate: true},
		{RefCarga: "2", Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Duplicate: true},
		{RefCarga: "3", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{RefCarga: "4", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Duplicate: true},
	}
	assert.Equal(t, 2, closing.PendingDuplicates("2024-01", loads))
	assert.Equal(t, 1, closing.PendingDuplicates("2024-02", loads))
	assert.Zero(t, closing.PendingDuplicates("2024-03", loads))
}

func TestTransition_BlockedByDuplicates(t *testing.T) {
	rec := entity.MonthClosing{Month: "2024-01", Status: entity.ClosingOpen}

	got, err := closing.Transition(rec, 2, "ana", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPendingDuplicates)
	var pe *domain.PendingDuplicatesError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Count)
	assert.Equal(t, entity.ClosingOpen, got.Status, "el rechazo no cambia el estado")
}

func TestTransition_Closes(t *testing.T) {
	at := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	rec := entity.MonthClosing{Month: "2024-01", Status: entity.ClosingOpen}

	got, err := closing.Transition(rec, 0, "ana", at)
	require.NoError(t, err)
	assert.Equal(t, entity.ClosingClosed, got.Status)
	assert.Equal(t, "ana", got.ClosedBy)
	require.NotNil(t, got.ClosedAt)
	assert.Equal(t, at, *got.ClosedAt)
	assert.Equal(t, entity.ClosingOpen, rec.Status)
}

func TestTransition_ClosedIsTerminal(t *testing.T) {
	rec := entity.MonthClosing{Month: "2024-01", Status: entity.ClosingClosed, ClosedBy: "ana"}

	got, err := closing.Transition(rec, 0, "luis", time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "ana", got.ClosedBy)
}
