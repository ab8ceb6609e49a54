// Package module wires the ledger service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/ledger/service"
)

// Module defines the ledger module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ledger module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps)
	return &Module{
		deps:  deps,
		ports: Ports{Ledger: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "ledger" }
