package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mltrack/internal/core/domain"
	ports "mltrack/internal/core/ports/output"
)

type runRepo struct {
	pool *pgxpool.Pool
}

func NewRunRepository(pool *pgxpool.Pool) ports.RunRepository {
	return &runRepo{pool: pool}
}

const runColumns = `id, experiment_id, name, status, params, metrics, artifact_uri, started_at, ended_at`

func (r *runRepo) Create(ctx context.Context, run *domain.Run) error {
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	query := `
		INSERT INTO run (id, experiment_id, name, status, params, metrics, artifact_uri, started_at, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err = r.pool.Exec(ctx, query,
		run.ID, run.ExperimentID, run.Name, string(run.Status),
		paramsJSON, metricsJSON, run.ArtifactURI, run.StartedAt, run.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	query := fmt.Sprintf(`SELECT %s FROM run WHERE id = $1`, runColumns)
	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get run by id: %w", err)
	}
	return run, nil
}

func (r *runRepo) Latest(ctx context.Context, experimentID uuid.UUID) (*domain.Run, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM run
		WHERE experiment_id = $1
		ORDER BY started_at DESC
		LIMIT 1
	`, runColumns)
	run, err := scanRun(r.pool.QueryRow(ctx, query, experimentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoRuns
		}
		return nil, fmt.Errorf("get latest run: %w", err)
	}
	return run, nil
}

func (r *runRepo) List(ctx context.Context, filter ports.RunListFilter) ([]*domain.Run, int, error) {
	conds := []string{"experiment_id = $1"}
	args := []interface{}{filter.ExperimentID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM run WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count runs: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM run WHERE %s
		ORDER BY started_at DESC
		LIMIT $%d OFFSET $%d
	`, runColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var items []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan run: %w", err)
		}
		items = append(items, run)
	}
	return items, total, rows.Err()
}

// LogMetrics merges the given values into the run's metrics map. Existing
// keys are overwritten; logging never removes a metric.
func (r *runRepo) LogMetrics(ctx context.Context, id uuid.UUID, metrics map[string]float64) error {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	query := `UPDATE run SET metrics = metrics || $1::jsonb WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, metricsJSON, id)
	if err != nil {
		return fmt.Errorf("log metrics: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *runRepo) SetArtifactURI(ctx context.Context, id uuid.UUID, uri string) error {
	query := `UPDATE run SET artifact_uri = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, uri, id)
	if err != nil {
		return fmt.Errorf("set artifact uri: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *runRepo) Finish(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	query := `
		UPDATE run SET status = $1, ended_at = $2
		WHERE id = $3 AND status = 'RUNNING'
	`
	tag, err := r.pool.Exec(ctx, query, string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing run from one already finished.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrRunNotActive
	}
	return nil
}

func scanRun(row pgx.Row) (*domain.Run, error) {
	var (
		run         domain.Run
		status      string
		paramsJSON  []byte
		metricsJSON []byte
	)
	err := row.Scan(
		&run.ID, &run.ExperimentID, &run.Name, &status,
		&paramsJSON, &metricsJSON, &run.ArtifactURI,
		&run.StartedAt, &run.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)

	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &run.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
	}
	if run.Params == nil {
		run.Params = map[string]string{}
	}
	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &run.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	if run.Metrics == nil {
		run.Metrics = map[string]float64{}
	}
	return &run, nil
}
