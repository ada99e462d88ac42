package middleware

import (
	"net/http"

	"commentedit/internal/platform/logger"
	pnet "commentedit/internal/platform/net"
)

// AuthPort authenticates a request
type AuthPort interface {
	// Parse returns the caller or an unauthorized error
	Parse(r *http.Request) (pnet.Principal, error)
}

// WriteFunc writes a status and JSON body
type WriteFunc func(w http.ResponseWriter, status int, body any)

// Auth rejects requests the port cannot authenticate.
// A nil port lets every request through anonymously.
func Auth(p AuthPort, write WriteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			principal, err := p.Parse(r)
			if err != nil {
				logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				status, body := pnet.Error(err, pnet.RequestID(r.Context()), false)
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, withPrincipal(r, principal))
		})
	}
}

func withPrincipal(r *http.Request, p pnet.Principal) *http.Request {
	ctx := pnet.WithPrincipal(r.Context(), p)
	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), p.UserID)
	return r.WithContext(ctx)
}
