package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // hcl definition file

	LogFormat     string
	LogLevel      string
	StopOnError   bool
	ExportPath    string // write the structural JSON export here, if set
	VisualizeOnly bool
	ContextValues map[string]any // initial execution context from -set flags
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
