package category

import (
	"context"
	"errors"

	"bdshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, key, name, name_bn, sort_order, created_at
FROM categories
ORDER BY sort_order ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Key, &c.Name, &c.NameBn, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Category, error) {
	const q = `
SELECT id::text, key, name, name_bn, sort_order, created_at
FROM categories
WHERE key = $1
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, key).Scan(&c.ID, &c.Key, &c.Name, &c.NameBn, &c.SortOrder, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (key, name, name_bn, sort_order)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO UPDATE SET
    name = EXCLUDED.name,
    name_bn = EXCLUDED.name_bn,
    sort_order = EXCLUDED.sort_order
RETURNING id::text, created_at
`
	res := c
	if err := r.pool.QueryRow(ctx, q, c.Key, c.Name, c.NameBn, c.SortOrder).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}
