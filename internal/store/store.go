// Package store defines the contract for persisting pipeline definitions and
// run reports. Only structural exports are stored; task bodies are not data,
// so executing a stored pipeline always goes through the registry.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskpipe/taskpipe/internal/pipeline"
)

var (
	ErrPipelineNotFound = errors.New("store: pipeline not found")
	ErrRunNotFound      = errors.New("store: run not found")
)

// RunRecord is one persisted execution outcome.
type RunRecord struct {
	ID        string           `json:"id"`
	Pipeline  string           `json:"pipeline"`
	Report    *pipeline.Report `json:"report"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Store persists structural pipeline exports and run reports.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Pipelines (keyed by name; save is an upsert)
	SavePipeline(ctx context.Context, def *pipeline.Definition) error
	GetPipeline(ctx context.Context, name string) (*pipeline.Definition, error)
	ListPipelines(ctx context.Context) ([]string, error)
	DeletePipeline(ctx context.Context, name string) error

	// Runs
	SaveRun(ctx context.Context, run *RunRecord) (string, error)
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, pipelineName string) ([]RunRecord, error)
}
