// Package module wires the audit service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/audit/service"
)

// Module defines the audit module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the audit module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps)
	return &Module{
		deps:  deps,
		ports: Ports{Recorder: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "audit" }
