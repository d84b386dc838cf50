package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
	"github.com/jhoicas/envos-stock/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `sku, nombre, tipo, unidad, stock_inicial, stock_seguridad, lead_time_dias,
	precio_venta, ultimo_coste, proveedor, imagen_url, activo, fecha_alta`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador del catálogo (pool o tx).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

type articleRow struct {
	SKU          string          `db:"sku"`
	Name         string          `db:"nombre"`
	Type         string          `db:"tipo"`
	Unit         string          `db:"unidad"`
	InitialStock int64           `db:"stock_inicial"`
	SafetyStock  int64           `db:"stock_seguridad"`
	LeadTimeDays int             `db:"lead_time_dias"`
	SalePrice    decimal.Decimal `db:"precio_venta"`
	LastCost     decimal.Decimal `db:"ultimo_coste"`
	Supplier     string          `db:"proveedor"`
	ImageURL     string          `db:"imagen_url"`
	Active       bool            `db:"activo"`
	CreatedOn    time.Time       `db:"fecha_alta"`
}

func (r articleRow) toEntity() *entity.Article {
	return &entity.Article{
		SKU:          r.SKU,
		Name:         r.Name,
		Type:         r.Type,
		Unit:         r.Unit,
		InitialStock: r.InitialStock,
		SafetyStock:  r.SafetyStock,
		LeadTimeDays: r.LeadTimeDays,
		SalePrice:    r.SalePrice,
		LastCost:     r.LastCost,
		Supplier:     r.Supplier,
		ImageURL:     r.ImageURL,
		Active:       r.Active,
		CreatedOn:    r.CreatedOn,
	}
}

// List devuelve el catálogo ordenado por SKU.
func (r *ArticleRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Article, error) {
	q := psql.Select(articleColumns).From("articulos").OrderBy("sku")
	if onlyActive {
		q = q.Where(squirrel.Eq{"activo": true})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list articulos: %w", err)
	}
	var rows []articleRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, mapError("list articulos", err)
	}
	out := make([]*entity.Article, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// GetBySKU obtiene un artículo. Devuelve (nil, nil) si no existe.
func (r *ArticleRepo) GetBySKU(ctx context.Context, sku string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articulos WHERE sku = $1`
	var row articleRow
	if err := pgxscan.Get(ctx, r.q, &row, query, sku); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError("get articulo", err)
	}
	return row.toEntity(), nil
}

// Create da de alta un artículo. SKU repetido → ErrDuplicate.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articulos (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.SKU, a.Name, a.Type, a.Unit, a.InitialStock, a.SafetyStock, a.LeadTimeDays,
		a.SalePrice, a.LastCost, a.Supplier, a.ImageURL, a.Active, a.CreatedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("articulo %s: %w", a.SKU, domain.ErrDuplicate)
		}
		return mapError("insert articulo", err)
	}
	return nil
}

// Update persiste los atributos editables. stock_inicial y fecha_alta no se tocan.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articulos SET nombre = $2, tipo = $3, unidad = $4, stock_seguridad = $5,
			lead_time_dias = $6, precio_venta = $7, ultimo_coste = $8, proveedor = $9,
			imagen_url = $10, activo = $11
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query,
		a.SKU, a.Name, a.Type, a.Unit, a.SafetyStock, a.LeadTimeDays,
		a.SalePrice, a.LastCost, a.Supplier, a.ImageURL, a.Active,
	)
	return affectedOne(tag, err, "update articulo")
}

// SetActive activa o desactiva un artículo sin borrar su historial.
func (r *ArticleRepo) SetActive(ctx context.Context, sku string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE articulos SET activo = $2 WHERE sku = $1`, sku, active)
	return affectedOne(tag, err, "toggle articulo")
}

// UpdateLastCost guarda el coste de la última entrada de compra.
func (r *ArticleRepo) UpdateLastCost(ctx context.Context, sku string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE articulos SET ultimo_coste = $2 WHERE sku = $1`, sku, cost)
	return affectedOne(tag, err, "update ultimo_coste")
}

func affectedOne(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return mapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
