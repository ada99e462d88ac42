package httpkit

import (
	"net/http"

	perr "commentedit/internal/platform/errors"
	pnet "commentedit/internal/platform/net"
)

// Principal returns the authenticated caller from the request context
func Principal(r *http.Request) (pnet.Principal, error) {
	p, ok := pnet.PrincipalFrom(r.Context())
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("missing bearer token")
	}
	return p, nil
}
