// Package module wires the submission intake service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/submit/domain"
	"modgate/internal/services/submit/service"
)

// Module defines the submit module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the submit module; collaborator ports arrive via
// modkit.WithPorts(domain.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	wired, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("submit module requires domain.Ports via modkit.WithPorts")
	}

	svc := service.New(deps, wired)
	return &Module{
		deps:  deps,
		ports: Ports{Submit: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "submit" }
