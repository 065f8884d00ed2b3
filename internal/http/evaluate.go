package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/load"
	"github.com/cayleygraph/ontoeval/internal/store"
)

const (
	evaluationIDHeader = "X-Evaluation-Id"
	// maxFormMemory is held in memory while parsing uploads; the rest spills to disk.
	maxFormMemory = 8 << 20
)

var errPathsDisabled = errors.New("path sources are disabled on this server")

type sourceRequest struct {
	Path    string  `json:"path,omitempty"`
	Content *string `json:"content,omitempty"`
	Format  string  `json:"format,omitempty"`
}

func (s sourceRequest) source(allowPaths bool) (eval.Source, error) {
	if s.Path != "" && !allowPaths {
		return eval.Source{}, errPathsDisabled
	}
	src := eval.Source{Path: s.Path, Format: s.Format}
	if s.Content != nil {
		src.Content = append([]byte{}, *s.Content...)
	}
	return src, nil
}

type evaluateRequest struct {
	Reference sourceRequest `json:"reference"`
	Generated sourceRequest `json:"generated"`
	Mode      string        `json:"mode,omitempty"`
}

// ServeV1Evaluate scores two ontologies given in a JSON body.
func (api *API) ServeV1Evaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.limitBody(w, r)
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request: %v", err))
		return
	}
	ref, err := req.Reference.source(api.config.AllowPaths)
	if err != nil {
		errorResponse(w, http.StatusForbidden, fmt.Errorf("reference ontology: %v", err))
		return
	}
	gen, err := req.Generated.source(api.config.AllowPaths)
	if err != nil {
		errorResponse(w, http.StatusForbidden, fmt.Errorf("generated ontology: %v", err))
		return
	}
	api.evaluate(w, r, ref, gen, req.Mode)
}

// ServeV1Upload scores two ontologies uploaded as the "reference" and
// "generated" files of a multipart form. Formats are detected from the file
// names unless the "format" field is set.
func (api *API) ServeV1Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.limitBody(w, r)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		errorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := r.FormValue("format")
	var srcs [2]eval.Source
	for i, side := range []string{eval.SideReference, eval.SideGenerated} {
		file, header, err := r.FormFile(side)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, fmt.Errorf("%s ontology: %v", side, err))
			return
		}
		srcs[i], err = uploadedSource(file, header, format)
		file.Close()
		if err != nil {
			errorResponse(w, http.StatusBadRequest, fmt.Errorf("%s ontology: %v", side, err))
			return
		}
	}
	api.evaluate(w, r, srcs[0], srcs[1], r.FormValue("mode"))
}

func (api *API) limitBody(w http.ResponseWriter, r *http.Request) {
	if api.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, api.config.MaxBodyBytes)
	}
}

func uploadedSource(file multipart.File, header *multipart.FileHeader, format string) (eval.Source, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return eval.Source{}, err
	}
	if data == nil {
		data = []byte{}
	}
	if format == "" {
		if f := quad.FormatByExt(strings.ToLower(filepath.Ext(header.Filename))); f != nil {
			format = f.Name
		}
	}
	return eval.Source{Content: data, Format: format}, nil
}

func (api *API) evaluate(w http.ResponseWriter, r *http.Request, ref, gen eval.Source, modeName string) {
	mode := api.eval.Mode()
	if modeName != "" {
		var err error
		if mode, err = eval.ParseMode(modeName); err != nil {
			errorResponse(w, http.StatusBadRequest, err)
			return
		}
	}

	ctx := r.Context()
	if api.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.config.Timeout)
		defer cancel()
	}

	id := uuid.New().String()
	w.Header().Set(evaluationIDHeader, id)
	m, err := api.eval.EvaluateMode(ctx, ref, gen, mode)
	if err != nil {
		code := errorStatus(err)
		if code == http.StatusInternalServerError {
			clog.Errorf("evaluation %s failed: %v", id, err)
		} else if clog.V(1) {
			clog.Infof("evaluation %s rejected: %v", id, err)
		}
		errorResponse(w, code, err)
		return
	}
	if api.store != nil {
		if err := api.store.Put(ctx, store.NewRecord(id, m)); err != nil {
			clog.Warningf("could not store evaluation %s: %v", id, err)
		}
	}
	jsonResponse(w, http.StatusOK, m)
}

// ServeV1Evaluation returns a stored evaluation by ID.
func (api *API) ServeV1Evaluation(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if api.store == nil {
		errorResponse(w, http.StatusNotFound, store.ErrNotFound)
		return
	}
	rec, err := api.store.Get(r.Context(), params.ByName("id"))
	if errors.Is(err, store.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		clog.Errorf("cannot read evaluation: %v", err)
		errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

func errorStatus(err error) int {
	var perr *load.ParseError
	switch {
	case errors.As(err, &perr),
		errors.Is(err, load.ErrNoSource),
		errors.Is(err, load.ErrUnknownFormat),
		errors.Is(err, eval.ErrUnknownMode),
		errors.Is(err, os.ErrNotExist):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
