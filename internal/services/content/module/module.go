// Package module wires the content service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/content/service"
)

// Module defines the content module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the content module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps)
	return &Module{
		deps:  deps,
		ports: Ports{Writer: svc, Reader: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "content" }
