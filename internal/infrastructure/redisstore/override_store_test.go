package redisstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/infrastructure/redisstore"
)

func TestParseField(t *testing.T) {
	key, ok := redisstore.ParseField("C-100|CIN-N-001")
	assert.True(t, ok)
	assert.Equal(t, entity.OverrideKey{LoadUID: "C-100", SKU: "CIN-N-001"}, key)

	for _, bad := range []string{"", "C-100", "|CIN", "C-100|", "C|100|CIN"} {
		_, ok := redisstore.ParseField(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseField_RoundTripConString(t *testing.T) {
	k := entity.OverrideKey{LoadUID: "C-7", SKU: "FLE-U-010"}
	got, ok := redisstore.ParseField(k.String())
	assert.True(t, ok)
	assert.Equal(t, k, got)
}

func TestDecodeOverrides_DescartaCorruptos(t *testing.T) {
	raw := map[string]string{
		"C-1|A":  "5",
		"C-1|B":  "0",
		"C-2|A":  "-3",
		"C-2|B":  "x",
		"basura": "7",
	}
	got := redisstore.DecodeOverrides(raw)
	assert.Equal(t, entity.BillingOverrides{
		{LoadUID: "C-1", SKU: "A"}: 5,
		{LoadUID: "C-1", SKU: "B"}: 0,
	}, got)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "envos:billing:overrides:2024-02", redisstore.MonthKey("2024-02"))
}
