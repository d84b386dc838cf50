package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	appbilling "github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

var _ appbilling.OverrideStore = (*OverrideStore)(nil)

const keyPrefix = "envos:billing:overrides:"

// OverrideStore guarda los overrides de cada mes en un hash: campo "ref_carga|sku", valor cantidad.
type OverrideStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOverrideStore ttl <= 0 deja los hashes sin caducidad.
func NewOverrideStore(client *redis.Client, ttl time.Duration) *OverrideStore {
	return &OverrideStore{client: client, ttl: ttl}
}

// MonthKey clave del hash de un mes.
func MonthKey(month string) string {
	return keyPrefix + month
}

// ParseField descompone "ref_carga|sku". La ingestión rechaza el separador en
// ref_carga y en los SKU, así que un campo con más de uno está corrupto.
func ParseField(field string) (entity.OverrideKey, bool) {
	load, sku, ok := strings.Cut(field, entity.OverrideKeySep)
	if !ok || load == "" || sku == "" || strings.Contains(sku, entity.OverrideKeySep) {
		return entity.OverrideKey{}, false
	}
	return entity.OverrideKey{LoadUID: load, SKU: sku}, true
}

func (s *OverrideStore) Load(ctx context.Context, month string) (entity.BillingOverrides, error) {
	raw, err := s.client.HGetAll(ctx, MonthKey(month)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL %s: %w: %w", month, domain.ErrUnavailable, err)
	}
	return DecodeOverrides(raw), nil
}

// DecodeOverrides convierte el hash en overrides; campos o valores corruptos se descartan.
func DecodeOverrides(raw map[string]string) entity.BillingOverrides {
	out := make(entity.BillingOverrides, len(raw))
	for field, val := range raw {
		key, ok := ParseField(field)
		if !ok {
			continue
		}
		qty, err := strconv.ParseInt(val, 10, 64)
		if err != nil || qty < 0 {
			continue
		}
		out[key] = qty
	}
	return out
}

func (s *OverrideStore) Set(ctx context.Context, month string, key entity.OverrideKey, qty int64) error {
	hash := MonthKey(month)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hash, key.String(), qty)
		if s.ttl > 0 {
			pipe.Expire(ctx, hash, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis HSET %s: %w: %w", hash, domain.ErrUnavailable, err)
	}
	return nil
}

func (s *OverrideStore) Delete(ctx context.Context, month string, key entity.OverrideKey) error {
	if err := s.client.HDel(ctx, MonthKey(month), key.String()).Err(); err != nil {
		return fmt.Errorf("redis HDEL %s: %w: %w", month, domain.ErrUnavailable, err)
	}
	return nil
}
