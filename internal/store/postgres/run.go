package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/store"
)

// SaveRun persists one run report. If run.ID is empty, a UUID is generated.
// Returns the run ID.
func (s *PGStore) SaveRun(ctx context.Context, run *store.RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	data, err := json.Marshal(run.Report)
	if err != nil {
		return "", fmt.Errorf("store: marshal report: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO pipeline_runs (id, pipeline, report) VALUES ($1, $2, $3)`,
		run.ID, run.Pipeline, data,
	)
	if err != nil {
		return "", fmt.Errorf("store: save run: %w", err)
	}
	return run.ID, nil
}

// GetRun fetches a run by its ID. Returns ErrRunNotFound if absent.
func (s *PGStore) GetRun(ctx context.Context, id string) (*store.RunRecord, error) {
	run := store.RunRecord{ID: id}
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT pipeline, report, created_at FROM pipeline_runs WHERE id = $1`, id,
	).Scan(&run.Pipeline, &data, &run.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrRunNotFound
		}
		return nil, fmt.Errorf("store: get run: %w", err)
	}

	run.Report = &pipeline.Report{}
	if err := json.Unmarshal(data, run.Report); err != nil {
		return nil, fmt.Errorf("store: unmarshal report: %w", err)
	}
	return &run, nil
}

// ListRuns returns all runs of one pipeline ordered by creation time.
// Returns an empty slice (not nil) if none exist.
func (s *PGStore) ListRuns(ctx context.Context, pipelineName string) ([]store.RunRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, pipeline, report, created_at FROM pipeline_runs
		 WHERE pipeline = $1 ORDER BY created_at`, pipelineName)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	runs := []store.RunRecord{}
	for rows.Next() {
		var run store.RunRecord
		var data []byte
		if err := rows.Scan(&run.ID, &run.Pipeline, &data, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		run.Report = &pipeline.Report{}
		if err := json.Unmarshal(data, run.Report); err != nil {
			return nil, fmt.Errorf("store: unmarshal report: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
