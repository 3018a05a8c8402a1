package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

type experimentRepo struct {
	pool *pgxpool.Pool
}

func NewExperimentRepository(pool *pgxpool.Pool) ports.ExperimentRepository {
	return &experimentRepo{pool: pool}
}

func (r *experimentRepo) Create(ctx context.Context, exp *domain.Experiment) error {
	query := `INSERT INTO experiment (id, created_at, name) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, exp.ID, exp.CreatedAt, exp.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrExperimentNameConflict
		}
		return fmt.Errorf("create experiment: %w", err)
	}
	return nil
}

func (r *experimentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Experiment, error) {
	query := `SELECT id, created_at, name FROM experiment WHERE id = $1`
	var exp domain.Experiment
	err := r.pool.QueryRow(ctx, query, id).Scan(&exp.ID, &exp.CreatedAt, &exp.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExperimentNotFound
		}
		return nil, fmt.Errorf("get experiment by id: %w", err)
	}
	return &exp, nil
}

func (r *experimentRepo) GetByName(ctx context.Context, name string) (*domain.Experiment, error) {
	query := `SELECT id, created_at, name FROM experiment WHERE name = $1`
	var exp domain.Experiment
	err := r.pool.QueryRow(ctx, query, name).Scan(&exp.ID, &exp.CreatedAt, &exp.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExperimentNotFound
		}
		return nil, fmt.Errorf("get experiment by name: %w", err)
	}
	return &exp, nil
}

func (r *experimentRepo) List(ctx context.Context, limit, offset int) ([]*domain.Experiment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM experiment`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count experiments: %w", err)
	}

	query := `SELECT id, created_at, name FROM experiment ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list experiments: %w", err)
	}
	defer rows.Close()

	var items []*domain.Experiment
	for rows.Next() {
		var exp domain.Experiment
		if err := rows.Scan(&exp.ID, &exp.CreatedAt, &exp.Name); err != nil {
			return nil, 0, fmt.Errorf("scan experiment: %w", err)
		}
		items = append(items, &exp)
	}
	return items, total, rows.Err()
}
