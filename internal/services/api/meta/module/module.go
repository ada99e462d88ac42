// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	modkit "commentedit/internal/modkit"
	"commentedit/internal/modkit/httpkit"
	"commentedit/internal/modkit/repokit"
	str "commentedit/internal/platform/strings"

	metahttp "commentedit/internal/services/api/meta/http"
)

// Ports are injected by the composition root
type Ports struct {
	// Policy reports the active edit policy; may be nil
	Policy func() string
	// Extra readiness checks appended after the shared backends
	Checks []metahttp.Check
}

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	deps      metahttp.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	m := &Module{built: b, startedAt: time.Now()}
	m.deps = metahttp.Deps{
		ServiceName: "commentedit-api",
		StartedAt:   m.startedAt,
		Checks:      append(checks(deps), injected.Checks...),
		Policy:      injected.Policy,
	}
	return m
}

// checks maps each shared backend to a probe; unconfigured ones stay nil and report skipped
func checks(deps modkit.Deps) []metahttp.Check {
	out := []metahttp.Check{{Name: "pg"}, {Name: "ch"}, {Name: "nats"}, {Name: "redis"}}
	if p, ok := deps.PG.(repokit.Pinger); ok {
		out[0].Pinger = p
	}
	if p, ok := deps.CH.(repokit.Pinger); ok {
		out[1].Pinger = p
	}
	if deps.NATS != nil {
		out[2].Pinger = deps.NATS
	}
	if deps.Redis != nil {
		out[3].Pinger = repokit.PingFunc(func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() })
	}
	return out
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
