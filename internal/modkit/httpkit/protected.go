package httpkit

import (
	"commentedit/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth; a nil port leaves them anonymous
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
