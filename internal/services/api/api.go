// Package api provides the HTTP API for the application
package api

import (
	"github.com/redis/go-redis/v9"

	"commentedit/internal/core/version"
	"commentedit/internal/platform/config"
	phttp "commentedit/internal/platform/net/http"
	"commentedit/internal/platform/net/middleware"
	"commentedit/internal/platform/natsconn"
	"commentedit/internal/platform/store"

	"commentedit/internal/modkit"
	"commentedit/internal/modkit/httpkit"
	"commentedit/internal/modkit/swaggerkit"

	commentsmod "commentedit/internal/services/api/comments/module"
	metamod "commentedit/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	NATS   *natsconn.Conn
	Redis  redis.UniversalClient

	// Auth authenticates comment editors
	Auth middleware.AuthPort

	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool

	// Comments carries comment module overrides such as a custom form factory
	Comments []commentsmod.Option
}

// Mount mounts the API service onto the given router and returns the built modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	deps := modkit.Deps{
		Cfg:   opt.Config,
		NATS:  opt.NATS,
		Redis: opt.Redis,
	}
	if opt.Store != nil {
		deps.Log = opt.Store.Log
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	comments := commentsmod.Builder(opt.Comments...)(
		deps,
		modkit.WithPorts(commentsmod.Ports{Auth: opt.Auth}),
	)

	var policyName func() string
	if rep, ok := modkit.PortsOf[commentsmod.PolicyReporter](comments); ok {
		policyName = func() string { return string(rep.PolicyName()) }
	}

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Policy: policyName})),
		comments,
	}

	swaggerkit.Mount(r, opt.EnableSwagger, swaggerkit.Info{Title: "commentedit API", Version: version.Info().Version})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	r.Group(func(api phttp.Router) {
		api.Use(httpkit.CommonStack(opt.Stack)...)
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return mods
}
