package memory

import (
	"context"
	"sync"

	appbilling "github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

var _ appbilling.OverrideStore = (*OverrideStore)(nil)

// OverrideStore overrides de facturación en memoria, particionados por mes.
// Se usa cuando no hay REDIS_URL configurado.
type OverrideStore struct {
	mu   sync.RWMutex
	data map[string]entity.BillingOverrides
}

// NewOverrideStore crea el almacén vacío.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{data: make(map[string]entity.BillingOverrides)}
}

func (s *OverrideStore) Load(_ context.Context, month string) (entity.BillingOverrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(entity.BillingOverrides, len(s.data[month]))
	for k, v := range s.data[month] {
		out[k] = v
	}
	return out, nil
}

func (s *OverrideStore) Set(_ context.Context, month string, key entity.OverrideKey, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[month] == nil {
		s.data[month] = make(entity.BillingOverrides)
	}
	s.data[month][key] = qty
	return nil
}

func (s *OverrideStore) Delete(_ context.Context, month string, key entity.OverrideKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[month], key)
	return nil
}
