package customer

import (
	"context"
	"errors"
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

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

const customerColumns = `id::text, email, password_hash, name, phone, address, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, password_hash, name, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + customerColumns
	created, err := scanCustomer(r.pool.QueryRow(ctx, q, strings.ToLower(c.Email), c.PasswordHash, c.Name, c.Phone, c.Address))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error().Err(err).Msg("customer repo: create")
		return nil, err
	}
	r.logger.Info().Str("id", created.ID).Msg("customer repo: created")
	return created, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.get(ctx, q, strings.ToLower(strings.TrimSpace(email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1::uuid`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) get(ctx context.Context, q string, arg string) (*domain.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
