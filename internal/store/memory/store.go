// Package memory provides a thread-safe, in-memory implementation of the
// store.Store interface. It is suitable for development, testing, or any
// scenario where definitions and run reports do not need to be persisted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/store"
)

// Store keeps pipelines and runs in process memory, guarded by one RWMutex.
type Store struct {
	mu        sync.RWMutex
	pipelines map[string]*pipeline.Definition
	pipeOrder []string
	runs      map[string]store.RunRecord
	runOrder  []string
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		pipelines: make(map[string]*pipeline.Definition),
		runs:      make(map[string]store.RunRecord),
	}
}

// CreateSchema is a no-op for the in-memory store.
func (s *Store) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards all stored data.
func (s *Store) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines = make(map[string]*pipeline.Definition)
	s.pipeOrder = nil
	s.runs = make(map[string]store.RunRecord)
	s.runOrder = nil
	return nil
}

func (s *Store) SavePipeline(ctx context.Context, def *pipeline.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pipelines[def.PipelineName]; !exists {
		s.pipeOrder = append(s.pipeOrder, def.PipelineName)
	}
	s.pipelines[def.PipelineName] = def
	return nil
}

func (s *Store) GetPipeline(ctx context.Context, name string) (*pipeline.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.pipelines[name]
	if !ok {
		return nil, store.ErrPipelineNotFound
	}
	return def, nil
}

func (s *Store) ListPipelines(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.pipeOrder))
	copy(names, s.pipeOrder)
	return names, nil
}

func (s *Store) DeletePipeline(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pipelines[name]; !ok {
		return store.ErrPipelineNotFound
	}
	delete(s.pipelines, name)
	for i, n := range s.pipeOrder {
		if n == name {
			s.pipeOrder = append(s.pipeOrder[:i], s.pipeOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) SaveRun(ctx context.Context, run *store.RunRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	s.runs[run.ID] = *run
	s.runOrder = append(s.runOrder, run.ID)
	return run.ID, nil
}

func (s *Store) GetRun(ctx context.Context, id string) (*store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, store.ErrRunNotFound
	}
	return &run, nil
}

func (s *Store) ListRuns(ctx context.Context, pipelineName string) ([]store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := []store.RunRecord{}
	for _, id := range s.runOrder {
		if run := s.runs[id]; run.Pipeline == pipelineName {
			runs = append(runs, run)
		}
	}
	return runs, nil
}
