// Package module wires the notify service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/notify/service"
)

// Module defines the notify module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the notify module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps)
	return &Module{
		deps:  deps,
		ports: Ports{Notifier: svc, Inbox: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "notify" }
