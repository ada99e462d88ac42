// Package module wires comment edits into the API using modkit
package module

import (
	"context"
	"time"

	"commentedit/internal/core/profanity"
	"commentedit/internal/core/sechash"
	modkit "commentedit/internal/modkit"
	"commentedit/internal/modkit/httpkit"
	"commentedit/internal/platform/logger"
	"commentedit/internal/platform/net/middleware"
	"commentedit/internal/services/api/comments/domain"
	"commentedit/internal/services/api/comments/events"
	"commentedit/internal/services/api/comments/form"
	chttp "commentedit/internal/services/api/comments/http"
	"commentedit/internal/services/api/comments/policy"
	"commentedit/internal/services/api/comments/repo"
	csvc "commentedit/internal/services/api/comments/service"
)

// Ports are injected by the composition root
type Ports struct {
	// Auth guards the edit routes
	Auth middleware.AuthPort
}

// Exported is what the module offers other modules
type Exported struct {
	Policy PolicyReporter
}

// PolicyReporter reports the active edit policy
type PolicyReporter interface {
	PolicyName() policy.Name
}

// Option customizes the module beyond modkit options
type Option func(*local)

type local struct {
	forms  domain.FormFactory
	target string
	store  domain.Store
}

// WithFormFactory replaces the built-in edit form
func WithFormFactory(f domain.FormFactory) Option { return func(l *local) { l.forms = f } }

// WithFormTarget replaces the URL pattern fresh forms post to; "%d" is the comment id
func WithFormTarget(pattern string) Option { return func(l *local) { l.target = pattern } }

// WithStore replaces the storage adapter
func WithStore(s domain.Store) Option { return func(l *local) { l.store = s } }

// Module implements the comments API module
type Module struct {
	built modkit.Built
	svc   *csvc.Svc
	opts  Options
	auth  middleware.AuthPort
}

// New constructs the module from shared deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return build(deps, nil, opts...)
}

// Builder returns a modkit.Builder carrying module options
func Builder(local ...Option) modkit.Builder {
	return func(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
		return build(deps, local, opts...)
	}
}

func build(deps modkit.Deps, lopts []Option, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("comments"),
		modkit.WithPrefix("/comments"),
	}, opts...)...)

	var l local
	for _, o := range lopts {
		o(&l)
	}
	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	cfg := FromConfig(deps.Cfg)
	log := logger.Named("comments")

	pol, err := policy.FromName(cfg.Policy)
	if err != nil {
		log.Panic().Err(err).Msg("edit policy")
	}

	if l.forms == nil {
		hash, err := sechash.New(cfg.SecretKey, cfg.HashSalt)
		if err != nil {
			log.Panic().Err(err).Msg("security hash")
		}
		var filter *profanity.Filter
		if !cfg.AllowProfanities {
			if filter, err = profanity.New(cfg.Profanities, cfg.ProfanityLocale); err != nil {
				log.Panic().Err(err).Msg("profanity filter")
			}
		}
		l.forms = form.NewFactory(hash, filter).New
	}

	if l.store == nil {
		if deps.PG == nil {
			log.Warn().Msg("no postgres configured; comments are kept in memory")
			l.store = repo.NewMemory()
		} else {
			l.store = repo.NewStore(deps.PG, repo.NewPG())
		}
	}

	var locker domain.EditLocker
	if deps.Redis != nil {
		locker = repo.NewRedisLocker(deps.Redis, cfg.EditLockTTL)
	}

	svc := csvc.New(l.store, csvc.Options{
		SiteID:     cfg.SiteID,
		Policy:     pol,
		Forms:      l.forms,
		Notifier:   notifier(deps, cfg),
		Locker:     locker,
		DoneURL:    cfg.DoneURL,
		FormTarget: l.target,
	})

	log.Info().Str("policy", string(pol.Name())).Int64("site_id", cfg.SiteID).
		Bool("profanity_filter", !cfg.AllowProfanities).Bool("edit_lock", locker != nil).
		Msg("comment edits enabled")

	chttp.RegisterDocs(b.Prefix)
	return &Module{built: b, svc: svc, opts: cfg, auth: injected.Auth}
}

// notifier assembles the event sinks for whatever backends are configured
func notifier(deps modkit.Deps, cfg Options) *events.Notifier {
	log := logger.Named("comments.events")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var sinks []events.Sink
	if deps.NATS != nil {
		if err := deps.NATS.EnsureStream(events.DefaultStream, cfg.NATSSubject); err != nil {
			log.Warn().Err(err).Str("stream", events.DefaultStream).Msg("jetstream stream unavailable")
		}
		sinks = append(sinks, events.NewNATS(deps.NATS, cfg.NATSSubject))
	}
	if deps.CH != nil {
		sink, err := events.NewClickHouse(deps.CH, cfg.FlagEventsTable)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("clickhouse sink disabled")
		default:
			if err := sink.EnsureTable(ctx); err != nil {
				log.Warn().Err(err).Str("table", cfg.FlagEventsTable).Msg("clickhouse table unavailable")
			}
			sinks = append(sinks, sink)
		}
	}
	n := events.New(sinks...)
	log.Info().Strs("sinks", n.Sinks()).Msg("comment_flagged sinks")
	return n
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		chttp.Register(rr, m.svc, chttp.Options{Debug: m.opts.Debug, Auth: m.auth})
	})
}

// Ports exposes the policy reporter
func (m *Module) Ports() any { return Exported{Policy: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }
