package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

func TestMapError_Transitorios(t *testing.T) {
	for _, code := range []string{"08006", "40001", "40P01", "57P01"} {
		err := mapError("op", &pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, domain.ErrUnavailable, code)
	}
}

func TestMapError_Permanentes(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	err := mapError("insert", dup)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
	assert.True(t, isUniqueViolation(err))

	plain := mapError("op", errors.New("boom"))
	assert.NotErrorIs(t, plain, domain.ErrUnavailable)
	assert.Contains(t, plain.Error(), "op: boom")

	assert.NoError(t, mapError("op", nil))
}

func TestClassPredicate(t *testing.T) {
	sql, args, err := classPredicate(entity.ClassLoadOut).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "ref_operacion IS NOT NULL", sql)
	assert.Empty(t, args)

	sql, args, err = classPredicate(entity.ClassRegularization).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ref_operacion IS NULL")
	assert.Contains(t, sql, "motivo LIKE ?")
	assert.Equal(t, []interface{}{"%Regularización%"}, args)

	sql, args, err = classPredicate(entity.ClassInbound).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "motivo NOT LIKE ?")
	assert.Contains(t, sql, "tipo = ?")
	assert.Equal(t, []interface{}{"%Regularización%", entity.MovementIn}, args)

	_, args, err = classPredicate(entity.ClassManualOut).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"%Regularización%", entity.MovementOut}, args)
}
