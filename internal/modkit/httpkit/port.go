package httpkit

import (
	"net/http"
	"strings"

	perr "commentedit/internal/platform/errors"
	pnet "commentedit/internal/platform/net"
)

// TokenFunc turns a raw bearer token into a principal
type TokenFunc func(token string) (pnet.Principal, error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse reads "Authorization: Bearer <token>"; the scheme is case insensitive.
// Every failure is an unauthorized error without parser detail.
func (p *Port) Parse(r *http.Request) (pnet.Principal, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return pnet.Principal{}, err
	}
	if p.parse == nil {
		return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
	}
	principal, err := p.parse(raw)
	if err != nil || principal.UserID == "" {
		return pnet.Principal{}, perr.Unauthorizedf("invalid bearer token")
	}
	return principal, nil
}

// BearerToken returns the raw bearer token from the Authorization header
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	i := strings.IndexAny(s, " \t")
	if i < 0 || !strings.EqualFold(s[:i], "bearer") {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[i:])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
