package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

type registeredModelRepo struct {
	pool *pgxpool.Pool
}

func NewRegisteredModelRepository(pool *pgxpool.Pool) ports.RegisteredModelRepository {
	return &registeredModelRepo{pool: pool}
}

func (r *registeredModelRepo) Create(ctx context.Context, model *domain.RegisteredModel) error {
	query := `INSERT INTO registered_model (id, created_at, name, description) VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, query, model.ID, model.CreatedAt, model.Name, model.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrModelNameConflict
		}
		return fmt.Errorf("create registered model: %w", err)
	}
	return nil
}

func (r *registeredModelRepo) GetByName(ctx context.Context, name string) (*domain.RegisteredModel, error) {
	query := `
		SELECT rm.id, rm.created_at, rm.name, rm.description,
			   (SELECT COUNT(*) FROM model_version mv WHERE mv.model_id = rm.id) AS version_count
		FROM registered_model rm
		WHERE rm.name = $1
	`
	var model domain.RegisteredModel
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&model.ID, &model.CreatedAt, &model.Name, &model.Description, &model.VersionCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get registered model by name: %w", err)
	}
	return &model, nil
}

func (r *registeredModelRepo) List(ctx context.Context, limit, offset int) ([]*domain.RegisteredModel, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registered_model`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registered models: %w", err)
	}

	query := `
		SELECT rm.id, rm.created_at, rm.name, rm.description,
			   (SELECT COUNT(*) FROM model_version mv WHERE mv.model_id = rm.id) AS version_count
		FROM registered_model rm
		ORDER BY rm.name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list registered models: %w", err)
	}
	defer rows.Close()

	var items []*domain.RegisteredModel
	for rows.Next() {
		var model domain.RegisteredModel
		if err := rows.Scan(&model.ID, &model.CreatedAt, &model.Name, &model.Description, &model.VersionCount); err != nil {
			return nil, 0, fmt.Errorf("scan registered model: %w", err)
		}
		items = append(items, &model)
	}
	return items, total, rows.Err()
}
