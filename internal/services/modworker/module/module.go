// Package module wires the moderation worker service and exposes its ports
package module

import (
	"modgate/internal/modkit"
	"modgate/internal/services/modworker/domain"
	"modgate/internal/services/modworker/service"
)

// Module defines the moderation worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the worker module. Collaborator ports arrive via
// modkit.WithPorts(domain.Ports{...}); zero fields in overrides fall back to
// config defaults
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	wired, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("modworker module requires domain.Ports via modkit.WithPorts")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.Concurrency != 0 {
		cfg.Concurrency = overrides.Concurrency
	}
	if overrides.QueueTakeBatch != 0 {
		cfg.QueueTakeBatch = overrides.QueueTakeBatch
	}
	if overrides.Tick != 0 {
		cfg.Tick = overrides.Tick
	}
	if overrides.LeaseFor != 0 {
		cfg.LeaseFor = overrides.LeaseFor
	}
	if overrides.MaxAttempts != 0 {
		cfg.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.RetryBase != 0 {
		cfg.RetryBase = overrides.RetryBase
	}

	svc := service.New(deps, service.Config{
		Concurrency:    cfg.Concurrency,
		QueueTakeBatch: cfg.QueueTakeBatch,
		Tick:           cfg.Tick,
		LeaseFor:       cfg.LeaseFor,
		MaxAttempts:    cfg.MaxAttempts,
		RetryBase:      cfg.RetryBase,
	}, wired)

	return &Module{
		deps:  deps,
		ports: Ports{Worker: svc, Jobs: svc},
	}
}

// Ports returns the module ports (Worker, Jobs)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "modworker" }
