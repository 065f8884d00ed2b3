// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package http serves ontology evaluations over a JSON API.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/config"
	"github.com/cayleygraph/ontoeval/internal/store"
)

type statusWriter struct {
	http.ResponseWriter
	code *int
}

func (w *statusWriter) WriteHeader(code int) {
	*(w.code) = code
	w.ResponseWriter.WriteHeader(code)
}

func LogRequest(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		start := time.Now()
		addr := req.Header.Get("X-Real-IP")
		if addr == "" {
			addr = req.Header.Get("X-Forwarded-For")
			if addr == "" {
				addr = req.RemoteAddr
			}
		}
		code := http.StatusOK
		rw := &statusWriter{ResponseWriter: w, code: &code}
		clog.Infof("started %s %s for %s", req.Method, req.URL.Path, addr)
		handler(rw, req, params)
		clog.Infof("completed %v %s %s in %v", code, http.StatusText(code), req.URL.Path, time.Since(start))
	}
}

func jsonResponse(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		clog.Errorf("cannot write response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, code int, err interface{}) {
	jsonResponse(w, code, struct {
		Error string `json:"error"`
	}{Error: fmt.Sprint(err)})
}

// API serves evaluation requests with a shared evaluator. Results are kept
// in the store when one is set.
type API struct {
	config *config.Config
	eval   *eval.Evaluator
	store  *store.Store
}

// NewAPI returns an API for the given configuration. st may be nil.
func NewAPI(cfg *config.Config, st *store.Store) *API {
	return &API{config: cfg, eval: cfg.Evaluator(), store: st}
}

func (api *API) APIv1(r *httprouter.Router) {
	r.POST("/api/v1/evaluate", CORS(LogRequest(api.ServeV1Evaluate)))
	r.POST("/api/v1/evaluate/upload", CORS(LogRequest(api.ServeV1Upload)))
	r.GET("/api/v1/evaluations/:id", CORS(LogRequest(api.ServeV1Evaluation)))
	r.GET("/api/v1/config", CORS(api.ServeV1Config))
}

func (api *API) ServeV1Config(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	jsonResponse(w, http.StatusOK, api.config)
}

// NewRouter returns a router with all API routes, health checks and metrics.
func NewRouter(cfg *config.Config, st *store.Store) *httprouter.Router {
	r := httprouter.New()
	r.OPTIONS("/*path", HandlePreflight)
	api := NewAPI(cfg, st)
	api.APIv1(r)
	r.GET("/health", api.ServeHealth)
	r.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}
