package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/store"
)

// SavePipeline stores the structural export, replacing any previous
// definition saved under the same name.
func (s *PGStore) SavePipeline(ctx context.Context, def *pipeline.Definition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("store: marshal definition: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO pipelines (name, definition) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET definition = EXCLUDED.definition`,
		def.PipelineName, data,
	)
	if err != nil {
		return fmt.Errorf("store: save pipeline: %w", err)
	}
	return nil
}

// GetPipeline fetches a stored definition by name. Returns
// ErrPipelineNotFound if no definition is saved under that name.
func (s *PGStore) GetPipeline(ctx context.Context, name string) (*pipeline.Definition, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT definition FROM pipelines WHERE name = $1`, name,
	).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("store: get pipeline: %w", err)
	}

	var def pipeline.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("store: unmarshal definition: %w", err)
	}
	return &def, nil
}

// ListPipelines returns the names of all stored pipelines ordered by
// creation time. Returns an empty slice (not nil) if none exist.
func (s *PGStore) ListPipelines(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM pipelines ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list pipelines: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan pipeline name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeletePipeline removes a stored definition. Returns ErrPipelineNotFound if
// nothing was saved under that name.
func (s *PGStore) DeletePipeline(ctx context.Context, name string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM pipelines WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("store: delete pipeline: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrPipelineNotFound
	}
	return nil
}
