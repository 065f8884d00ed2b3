package http

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// CORSFunc sets CORS headers for requests that carry an Origin.
func CORSFunc(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	if origin := req.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Accept, Content-Type, Content-Length, Accept-Encoding")
		w.Header().Set("Access-Control-Expose-Headers", evaluationIDHeader)
	}
}

// CORS adds CORS related headers to responses.
func CORS(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		CORSFunc(w, req, params)
		h(w, req, params)
	}
}

// HandlePreflight answers CORS preflight requests.
func HandlePreflight(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	CORSFunc(w, req, params)
	w.WriteHeader(http.StatusNoContent)
}
