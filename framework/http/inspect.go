package http

import (
	"net/http"

	"github.com/km-arc/go-tiko/framework/container"
)

// BindingsHandler lists the registrations of c as
// {"data": [{"type": "...", "materialized": true}, ...]}.
func BindingsHandler(c *container.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		NewResponse(w).Success(c.Bindings())
	}
}
