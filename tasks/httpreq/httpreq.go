// Package httpreq provides a task body that performs a single HTTP request
// and exposes the response to downstream nodes.
package httpreq

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"

	"github.com/taskpipe/taskpipe/internal/ctxlog"
	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the http_request body.
type Input struct {
	URL     string `pipe:"url"`
	Method  string `pipe:"method,optional"`
	Payload string `pipe:"payload,optional"`
}

// Output defines the data produced by the body.
type Output struct {
	Status     int     `pipe:"status"`
	Body       string  `pipe:"response"`
	DurationMs float64 `pipe:"duration_ms"`
}

func newInput() any {
	return &Input{Method: "GET"}
}

func run(ctx context.Context, in *Input) (any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Making HTTP request", "method", in.Method, "url", in.URL)

	client := resty.New()
	defer client.Close()

	req := client.R().SetContext(ctx)

	var (
		res *resty.Response
		err error
	)
	switch strings.ToUpper(in.Method) {
	case "", "GET":
		res, err = req.Get(in.URL)
	case "POST":
		res, err = req.SetBody(in.Payload).Post(in.URL)
	case "PUT":
		res, err = req.SetBody(in.Payload).Put(in.URL)
	case "DELETE":
		res, err = req.Delete(in.URL)
	default:
		return nil, fmt.Errorf("unsupported method %q", in.Method)
	}
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	logger.Info("Received HTTP response", "status", res.StatusCode(), "duration", res.Duration())
	return &Output{
		Status:     res.StatusCode(),
		Body:       res.String(),
		DurationMs: float64(res.Duration().Milliseconds()),
	}, nil
}

// Register registers the body with the engine under the name "http_request".
func (m *Module) Register(r *registry.Registry) {
	r.Register("http_request", pipeline.Typed(newInput, run))
}
