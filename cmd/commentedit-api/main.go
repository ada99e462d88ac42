// @title         commentedit API
// @version       0.1.0
// @description   Moderated comment edits with tamper-evident forms

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	jwtauth "commentedit/internal/adapters/auth/jwt"
	"commentedit/internal/modkit/httpkit"
	"commentedit/internal/platform/config"
	"commentedit/internal/platform/logger"
	"commentedit/internal/platform/natsconn"
	phttp "commentedit/internal/platform/net/http"
	"commentedit/internal/platform/net/middleware"
	"commentedit/internal/platform/redisconn"
	"commentedit/internal/platform/store"

	"commentedit/internal/services/api"
)

func main() {
	// .env is optional; real env wins
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	authCfg := root.Prefix("COMMENTS_")
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(root, "api"), store.WithLogger(*logger.Named("store")))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Panic().Err(err).Msg("store not ready")
	}

	opts := api.Options{
		Config:         root,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
			SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 0),
			CORS: middleware.CORSOptions{
				AllowedOrigins:   apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
				AllowCredentials: apiCfg.MayBool("CORS_CREDENTIALS", false),
			},
		},
	}

	if nopts := natsconn.FromConfig(root); nopts.URL != "" {
		nc, err := natsconn.Connect(nopts)
		if err != nil {
			l.Panic().Err(err).Msg("nats connect failed")
		}
		defer func() { _ = nc.Close() }()
		opts.NATS = nc
	}

	rc, err := redisconn.Open(ctx, redisconn.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("redis connect failed")
	}
	if rc != nil {
		defer func() { _ = rc.Close() }()
		opts.Redis = rc
	}

	if secret := authCfg.MayString("JWT_SECRET", ""); secret != "" {
		v, err := jwtauth.New(secret, authCfg.MayString("JWT_ISSUER", ""))
		if err != nil {
			l.Panic().Err(err).Msg("jwt verifier")
		}
		opts.Auth = v.Port()
	} else {
		l.Warn().Msg("COMMENTS_JWT_SECRET unset; edit routes reject every request")
		opts.Auth = httpkit.NewPortFunc(nil)
	}

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), opts)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
