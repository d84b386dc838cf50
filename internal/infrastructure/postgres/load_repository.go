package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
	"github.com/jhoicas/envos-stock/pkg/period"
)

var _ repository.LoadRepository = (*LoadRepo)(nil)

const loadColumns = `ref_carga, fecha, equipo, matricula, consumos, duplicado, modificada,
	original_fingerprint, updated_at`

// LoadRepo persistencia de cargas operativas. Los consumos van en una columna JSONB.
type LoadRepo struct {
	q Querier
}

// NewLoadRepository construye el adaptador de cargas (pool o tx).
func NewLoadRepository(q Querier) *LoadRepo {
	return &LoadRepo{q: q}
}

type loadRow struct {
	RefCarga            string           `db:"ref_carga"`
	Date                time.Time        `db:"fecha"`
	Equipment           string           `db:"equipo"`
	Plate               string           `db:"matricula"`
	Consumptions        map[string]int64 `db:"consumos"`
	Duplicate           bool             `db:"duplicado"`
	Modified            bool             `db:"modificada"`
	OriginalFingerprint string           `db:"original_fingerprint"`
	UpdatedAt           time.Time        `db:"updated_at"`
}

func (r loadRow) toEntity() *entity.OperationalLoad {
	consumptions := r.Consumptions
	if consumptions == nil {
		consumptions = map[string]int64{}
	}
	return &entity.OperationalLoad{
		RefCarga:            r.RefCarga,
		Date:                r.Date,
		Equipment:           r.Equipment,
		Plate:               r.Plate,
		Consumptions:        consumptions,
		Duplicate:           r.Duplicate,
		Modified:            r.Modified,
		OriginalFingerprint: r.OriginalFingerprint,
		UpdatedAt:           r.UpdatedAt,
	}
}

// List devuelve las cargas del filtro, más recientes primero.
func (r *LoadRepo) List(ctx context.Context, f repository.LoadFilter) ([]*entity.OperationalLoad, error) {
	q := psql.Select(loadColumns).From("cargas").OrderBy("fecha DESC", "ref_carga")
	if f.Month != "" {
		from, to, err := period.Bounds(f.Month)
		if err != nil {
			return nil, err
		}
		q = q.Where(squirrel.GtOrEq{"fecha": from}).Where(squirrel.Lt{"fecha": to})
	}
	if f.OnlyDuplicate {
		q = q.Where(squirrel.Eq{"duplicado": true})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cargas: %w", err)
	}

	var rows []loadRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, mapError("list cargas", err)
	}
	out := make([]*entity.OperationalLoad, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// GetByRef devuelve (nil, nil) si la carga no existe.
func (r *LoadRepo) GetByRef(ctx context.Context, ref string) (*entity.OperationalLoad, error) {
	return r.get(ctx, `SELECT `+loadColumns+` FROM cargas WHERE ref_carga = $1`, ref)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *LoadRepo) GetForUpdate(ctx context.Context, ref string) (*entity.OperationalLoad, error) {
	return r.get(ctx, `SELECT `+loadColumns+` FROM cargas WHERE ref_carga = $1 FOR UPDATE`, ref)
}

func (r *LoadRepo) get(ctx context.Context, query, ref string) (*entity.OperationalLoad, error) {
	var row loadRow
	if err := pgxscan.Get(ctx, r.q, &row, query, ref); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError("get carga", err)
	}
	return row.toEntity(), nil
}

// Upsert inserta la carga o reemplaza todos sus campos.
func (r *LoadRepo) Upsert(ctx context.Context, l *entity.OperationalLoad) error {
	consumptions := l.Consumptions
	if consumptions == nil {
		consumptions = map[string]int64{}
	}
	query := `
		INSERT INTO cargas (` + loadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (ref_carga) DO UPDATE SET
			fecha = EXCLUDED.fecha,
			equipo = EXCLUDED.equipo,
			matricula = EXCLUDED.matricula,
			consumos = EXCLUDED.consumos,
			duplicado = EXCLUDED.duplicado,
			modificada = EXCLUDED.modificada,
			original_fingerprint = EXCLUDED.original_fingerprint,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		l.RefCarga, l.Date, l.Equipment, l.Plate, consumptions, l.Duplicate, l.Modified,
		l.OriginalFingerprint, l.UpdatedAt,
	)
	if err != nil {
		return mapError("upsert carga", err)
	}
	return nil
}

// CountDuplicates cuenta las cargas marcadas como duplicadas en el mes.
func (r *LoadRepo) CountDuplicates(ctx context.Context, month string) (int, error) {
	from, to, err := period.Bounds(month)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM cargas WHERE duplicado AND fecha >= $1 AND fecha < $2`, from, to,
	).Scan(&n)
	if err != nil {
		return 0, mapError("count duplicados", err)
	}
	return n, nil
}
