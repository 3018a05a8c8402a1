package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

type modelVersionRepo struct {
	pool *pgxpool.Pool
}

func NewModelVersionRepository(pool *pgxpool.Pool) ports.ModelVersionRepository {
	return &modelVersionRepo{pool: pool}
}

const versionColumns = `
	mv.id, mv.created_at, mv.model_id, rm.name, mv.version, mv.stage,
	mv.run_id, mv.artifact_uri, mv.metric_name, mv.metric_value
`

// Create inserts the new version and flips the previous LATEST version of the
// same model to SUPERSEDED inside one transaction, so a reader never observes
// two LATEST versions for one model.
func (r *modelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE model_version SET stage = $1 WHERE model_id = $2 AND stage = $3`,
		string(domain.VersionStageSuperseded), version.ModelID, string(domain.VersionStageLatest),
	)
	if err != nil {
		return fmt.Errorf("supersede previous version: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO model_version
			(id, created_at, model_id, version, stage, run_id, artifact_uri, metric_name, metric_value)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		version.ID, version.CreatedAt, version.ModelID, version.Version,
		string(version.Stage), version.RunID, version.ArtifactURI,
		version.MetricName, version.MetricValue,
	)
	if err != nil {
		return fmt.Errorf("create model version: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *modelVersionRepo) Latest(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM model_version mv
		JOIN registered_model rm ON rm.id = mv.model_id
		WHERE mv.model_id = $1 AND mv.stage = $2
	`, versionColumns)
	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, string(domain.VersionStageLatest)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoVersions
		}
		return nil, fmt.Errorf("get latest model version: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM model_version mv
		JOIN registered_model rm ON rm.id = mv.model_id
		WHERE mv.model_id = $1 AND mv.version = $2
	`, versionColumns)
	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get model version by number: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) ListByModel(ctx context.Context, modelID uuid.UUID, limit, offset int) ([]*domain.ModelVersion, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM model_version WHERE model_id = $1`, modelID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count model versions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM model_version mv
		JOIN registered_model rm ON rm.id = mv.model_id
		WHERE mv.model_id = $1
		ORDER BY mv.version DESC
		LIMIT $2 OFFSET $3
	`, versionColumns)
	rows, err := r.pool.Query(ctx, query, modelID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list model versions: %w", err)
	}
	defer rows.Close()

	var items []*domain.ModelVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model version: %w", err)
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *modelVersionRepo) NextVersionNumber(ctx context.Context, modelID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(version), 0) FROM model_version WHERE model_id = $1`
	if err := r.pool.QueryRow(ctx, query, modelID).Scan(&max); err != nil {
		return 0, fmt.Errorf("next version number: %w", err)
	}
	return max + 1, nil
}

func scanVersion(row pgx.Row) (*domain.ModelVersion, error) {
	var (
		v     domain.ModelVersion
		stage string
	)
	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.ModelID, &v.ModelName, &v.Version, &stage,
		&v.RunID, &v.ArtifactURI, &v.MetricName, &v.MetricValue,
	)
	if err != nil {
		return nil, err
	}
	v.Stage = domain.VersionStage(stage)
	return &v, nil
}
