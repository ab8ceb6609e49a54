// Package module wires the review service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/review/domain"
	"modgate/internal/services/review/service"
)

// Module defines the review module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the review module; collaborator ports arrive via
// modkit.WithPorts(domain.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	wired, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("review module requires domain.Ports via modkit.WithPorts")
	}

	svc := service.New(deps, wired)
	return &Module{
		deps:  deps,
		ports: Ports{Review: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "review" }
