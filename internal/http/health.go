package http

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/cayleygraph/ontoeval/clog"
)

// ServeHealth answers 204 while the server can take evaluations. With an
// evaluation store configured, the store must also answer, otherwise the
// check fails with 503.
func (api *API) ServeHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", "no-store")
	if api.store != nil {
		if err := api.store.Ping(r.Context()); err != nil {
			clog.Warningf("health check: %v", err)
			errorResponse(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
