package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPendingDuplicatesError_Is(t *testing.T) {
	var err error = fmt.Errorf("cierre: %w", &domain.PendingDuplicatesError{Month: "2024-01", Count: 2})

	assert.ErrorIs(t, err, domain.ErrPendingDuplicates)
	var pe *domain.PendingDuplicatesError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Count)
	assert.Contains(t, err.Error(), "2 cargas duplicadas")
}

func TestBatchError_Unwrap(t *testing.T) {
	err := &domain.BatchError{RefCarga: "C-9", Index: 3, Err: domain.ErrPeriodClosed}

	assert.ErrorIs(t, err, domain.ErrPeriodClosed)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "C-9")
}
