package app

import (
	"github.com/taskpipe/taskpipe/internal/registry"
	"github.com/taskpipe/taskpipe/tasks/envvars"
	"github.com/taskpipe/taskpipe/tasks/httpreq"
	"github.com/taskpipe/taskpipe/tasks/printer"
	"github.com/taskpipe/taskpipe/tasks/shell"
)

// coreModules is the definitive list of all task modules that are compiled
// into the taskpipe binary.
var coreModules = []registry.Module{
	&envvars.Module{},
	&printer.Module{},
	&httpreq.Module{},
	&shell.Module{},
}

// DefaultRegistry returns a fresh registry populated with every core task
// module. The server entrypoint uses it to resolve stored pipelines.
func DefaultRegistry() *registry.Registry {
	reg := registry.New()
	for _, mod := range coreModules {
		mod.Register(reg)
	}
	return reg
}
