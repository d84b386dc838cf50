package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos sobre PostgreSQL. Solo inserta; el único borrado
// es el de las salidas de una carga al resincronizarla.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del ledger (pool o tx).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

type movementRow struct {
	ID           string    `db:"id"`
	SKU          string    `db:"sku"`
	Type         string    `db:"tipo"`
	Quantity     int64     `db:"cantidad"`
	Reason       string    `db:"motivo"`
	User         string    `db:"usuario"`
	Period       string    `db:"periodo"`
	OperationRef *string   `db:"ref_operacion"`
	CreatedAt    time.Time `db:"fecha"`
}

// Create inserta un movimiento. ref_operacion vacío se guarda como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var ref *string
	if m.OperationRef != "" {
		ref = &m.OperationRef
	}
	query := `
		INSERT INTO movimientos (id, sku, tipo, cantidad, motivo, usuario, periodo, ref_operacion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, m.Type, m.Quantity, m.Reason, m.User, m.Period, ref, m.CreatedAt,
	)
	if err != nil {
		return mapError("insert movimiento", err)
	}
	return nil
}

// List devuelve los movimientos filtrados, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	q := psql.
		Select("id::text AS id", "sku", "tipo", "cantidad", "motivo", "usuario", "periodo", "ref_operacion", "fecha").
		From("movimientos").
		OrderBy("fecha DESC", "id")
	if f.Period != "" {
		q = q.Where(squirrel.Eq{"periodo": f.Period})
	}
	if f.SKU != "" {
		q = q.Where(squirrel.Eq{"sku": f.SKU})
	}
	if f.Class != "" {
		q = q.Where(classPredicate(f.Class))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movimientos: %w", err)
	}

	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, mapError("list movimientos", err)
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		m := &entity.Movement{
			ID:        row.ID,
			SKU:       row.SKU,
			Type:      row.Type,
			Quantity:  row.Quantity,
			Reason:    row.Reason,
			User:      row.User,
			Period:    row.Period,
			CreatedAt: row.CreatedAt,
		}
		if row.OperationRef != nil {
			m.OperationRef = *row.OperationRef
		}
		out = append(out, m)
	}
	return out, nil
}

// classPredicate traduce entity.Movement.Class a SQL con la misma precedencia:
// carga, regularización y después tipo.
func classPredicate(class string) squirrel.Sqlizer {
	regularized := squirrel.Like{"motivo": "%" + entity.RegularizationMarker + "%"}
	notRegularized := squirrel.NotLike{"motivo": "%" + entity.RegularizationMarker + "%"}
	manual := squirrel.Eq{"ref_operacion": nil}
	switch class {
	case entity.ClassLoadOut:
		return squirrel.NotEq{"ref_operacion": nil}
	case entity.ClassRegularization:
		return squirrel.And{manual, regularized}
	case entity.ClassInbound:
		return squirrel.And{manual, notRegularized, squirrel.Eq{"tipo": entity.MovementIn}}
	default:
		return squirrel.And{manual, notRegularized, squirrel.Eq{"tipo": entity.MovementOut}}
	}
}

// DeleteByOperationRef borra las salidas generadas por una carga.
func (r *MovementRepo) DeleteByOperationRef(ctx context.Context, ref string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE ref_operacion = $1`, ref)
	if err != nil {
		return 0, mapError("delete movimientos de carga", err)
	}
	return tag.RowsAffected(), nil
}
