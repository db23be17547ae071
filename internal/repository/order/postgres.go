package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bdshop/internal/domain"
	"bdshop/internal/logging"
	"github.com/jackc/pgx/v5"
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

const orderColumns = `id::text, customer_id::text, customer_name, phone, address, note, items, lines,
       total_poisha, status, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, line := range o.Lines {
		if err := reserveStock(ctx, tx, line); err != nil {
			r.logger.Warn().Err(err).Str("product_id", line.ProductID).Int("quantity", line.Quantity).Msg("order repo: reserve stock")
			return nil, err
		}
	}

	status := o.Status
	if status == "" {
		status = domain.OrderPending
	}
	q := `
INSERT INTO orders (customer_id, customer_name, phone, address, note, items, lines, total_poisha, status)
VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + orderColumns
	var customerID string
	if o.CustomerID != nil {
		customerID = *o.CustomerID
	}
	created, err := scanOrder(tx.QueryRow(ctx, q,
		customerID,
		o.CustomerName,
		o.Phone,
		o.Address,
		o.Note,
		o.Items,
		o.Lines,
		o.TotalPoisha,
		string(status),
	))
	if err != nil {
		r.logger.Error().Err(err).Msg("order repo: insert")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info().Str("id", created.ID).Int64("total_poisha", created.TotalPoisha).Int("lines", len(created.Lines)).Msg("order repo: created")
	return created, nil
}

func reserveStock(ctx context.Context, tx pgx.Tx, line domain.OrderLine) error {
	id, err := domain.ParseID(line.ProductID)
	if err != nil {
		return fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
	}
	cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock_count = stock_count - $2, updated_at = now()
WHERE id = $1::uuid AND stock_count >= $2
`, id, line.Quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1::uuid)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", line.Name, domain.ErrInsufficientStock)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1::uuid`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error) {
	clauses := []string{"TRUE"}
	var args []interface{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CustomerID != "" {
		customerID, err := domain.ParseID(f.CustomerID)
		if err != nil {
			return []domain.Order{}, 0, nil
		}
		args = append(args, customerID)
		clauses = append(clauses, fmt.Sprintf("customer_id = $%d::uuid", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("order repo: list")
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	q := `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("id", id).Msg("order repo: update status")
		return nil, err
	}
	r.logger.Info().Str("id", id).Str("status", string(status)).Msg("order repo: status updated")
	return o, nil
}

func (r *postgresRepo) Stats(ctx context.Context) (domain.OrderStats, error) {
	stats := domain.OrderStats{CountByStatus: map[domain.OrderStatus]int{}}
	for _, st := range domain.OrderStatuses {
		stats.CountByStatus[st] = 0
	}

	rows, err := r.pool.Query(ctx, `
SELECT status, COUNT(*), COALESCE(SUM(total_poisha), 0)
FROM orders
GROUP BY status
`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var sum int64
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return stats, err
		}
		st := domain.OrderStatus(status)
		stats.CountByStatus[st] = count
		if st != domain.OrderPending {
			stats.RevenuePoisha += sum
		}
	}
	return stats, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var customerID *string
	var status string
	if err := row.Scan(
		&o.ID,
		&customerID,
		&o.CustomerName,
		&o.Phone,
		&o.Address,
		&o.Note,
		&o.Items,
		&o.Lines,
		&o.TotalPoisha,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.CustomerID = customerID
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
