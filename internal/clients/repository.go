package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence port for client records.
type Repository interface {
	Insert(ctx context.Context, c Client) (Client, error)
	Get(ctx context.Context, id uuid.UUID) (Client, error)
	List(ctx context.Context, limit, offset int) ([]Client, int, error)
	Update(ctx context.Context, c Client) (Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const clientColumns = `id, name, email, phone, business_type, gstin, pan, tan, cin, turnover, status, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BusinessType,
		&c.GSTIN, &c.PAN, &c.TAN, &c.CIN, &c.Turnover, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *pgRepository) Insert(ctx context.Context, c Client) (Client, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (id, name, email, phone, business_type, gstin, pan, tan, cin, turnover, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+clientColumns,
		c.ID, c.Name, c.Email, c.Phone, c.BusinessType, c.GSTIN, c.PAN, c.TAN, c.CIN, c.Turnover, c.Status)
	out, err := scanClient(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Client{}, ErrDuplicatePAN
		}
		return Client{}, fmt.Errorf("clients: insert: %w", err)
	}
	return out, nil
}

func (r *pgRepository) Get(ctx context.Context, id uuid.UUID) (Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, ErrClientNotFound
		}
		return Client{}, fmt.Errorf("clients: get: %w", err)
	}
	return c, nil
}

func (r *pgRepository) List(ctx context.Context, limit, offset int) ([]Client, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("clients: count: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("clients: list: %w", err)
	}
	defer rows.Close()

	out := make([]Client, 0, limit)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("clients: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("clients: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgRepository) Update(ctx context.Context, c Client) (Client, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, turnover = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+clientColumns,
		c.ID, c.Name, c.Email, c.Phone, c.Turnover, c.Status)
	out, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, ErrClientNotFound
		}
		return Client{}, fmt.Errorf("clients: update: %w", err)
	}
	return out, nil
}

func (r *pgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clients: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}
