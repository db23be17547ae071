package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bdshop/internal/domain"
	"bdshop/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

const productColumns = `id::text, name, price_poisha, image_url, images, category, discount, stock_count,
       description, long_description, seo_description, status, created_at, updated_at`

var sortClauses = map[string]string{
	domain.SortNewest:    "created_at DESC, id",
	domain.SortPriceAsc:  "price_poisha * (100 - discount) ASC, id",
	domain.SortPriceDesc: "price_poisha * (100 - discount) DESC, id",
	domain.SortDiscount:  "discount DESC, created_at DESC, id",
	domain.SortName:      "lower(name) ASC, id",
}

func (r *postgresRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	where, args := buildWhere(f)

	var total int
	countQ := `SELECT COUNT(*) FROM products WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("product repo: count")
		return nil, 0, err
	}

	orderBy, ok := sortClauses[f.Sort]
	if !ok {
		orderBy = sortClauses[domain.SortNewest]
	}
	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("product repo: list")
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("product repo: list rows")
		return nil, 0, err
	}
	r.logger.Debug().Str("category", f.Category).Int("count", len(result)).Int("total", total).Msg("product repo: list")
	return result, total, nil
}

func buildWhere(f domain.ProductFilter) (string, []interface{}) {
	clauses := []string{"TRUE"}
	var args []interface{}
	add := func(format string, v interface{}) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("name ILIKE $%d", "%"+escapeLike(q)+"%")
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.OnSale {
		clauses = append(clauses, "discount > 0")
	}
	if f.InStockOnly {
		clauses = append(clauses, "stock_count > 0")
	}
	return strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1::uuid`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("id", id).Msg("product repo: get")
		return nil, err
	}
	return p, nil
}

// Save inserts the product, or replaces every editable column when a product
// with the same id already exists. An empty id gets a generated one.
func (r *postgresRepo) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, price_poisha, image_url, images, category, discount, stock_count,
                      description, long_description, seo_description, status)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, COALESCE($5::jsonb, '[]'::jsonb), $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    price_poisha = EXCLUDED.price_poisha,
    image_url = EXCLUDED.image_url,
    images = EXCLUDED.images,
    category = EXCLUDED.category,
    discount = EXCLUDED.discount,
    stock_count = EXCLUDED.stock_count,
    description = EXCLUDED.description,
    long_description = EXCLUDED.long_description,
    seo_description = EXCLUDED.seo_description,
    status = EXCLUDED.status,
    updated_at = now()
RETURNING ` + productColumns

	if p.ID != "" {
		id, err := domain.ParseID(p.ID)
		if err != nil {
			return nil, domain.Invalid("product id must be a UUID")
		}
		p.ID = id
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	status := p.Status
	if status == "" {
		status = domain.ProductActive
	}
	saved, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID,
		p.Name,
		p.PricePoisha,
		p.ImageURL,
		images,
		p.Category,
		p.Discount,
		p.StockCount,
		p.Description,
		p.LongDescription,
		p.SEODescription,
		string(status),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("unknown category %q: %w", p.Category, domain.ErrNotFound)
		}
		r.logger.Error().Err(err).Str("name", p.Name).Msg("product repo: save")
		return nil, err
	}
	r.logger.Info().Str("id", saved.ID).Str("category", saved.Category).Msg("product repo: saved")
	return saved, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1::uuid`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("product repo: delete")
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Str("id", id).Msg("product repo: deleted")
	return nil
}

func (r *postgresRepo) AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	q := `
UPDATE products
SET stock_count = stock_count + $2, updated_at = now()
WHERE id = $1::uuid AND stock_count + $2 >= 0
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id, delta))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrInsufficientStock
}

func (r *postgresRepo) Stats(ctx context.Context) (int, int, error) {
	var total, outOfStock int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*), COUNT(*) FILTER (WHERE stock_count = 0)
FROM products
`).Scan(&total, &outOfStock)
	return total, outOfStock, err
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var status string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PricePoisha,
		&p.ImageURL,
		&p.Images,
		&p.Category,
		&p.Discount,
		&p.StockCount,
		&p.Description,
		&p.LongDescription,
		&p.SEODescription,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ProductStatus(status)
	return &p, nil
}
