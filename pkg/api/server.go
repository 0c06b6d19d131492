// Package api exposes the translator over HTTP. The server is stateless
// apart from the optional run history store: every translate request
// carries a full scene document in its body.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mtlxbridge/mtlxbridge/pkg/buildinfo"
	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
	"github.com/mtlxbridge/mtlxbridge/pkg/history"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/observability"
	"github.com/mtlxbridge/mtlxbridge/pkg/schema"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
	"github.com/mtlxbridge/mtlxbridge/pkg/translate"
	"github.com/mtlxbridge/mtlxbridge/pkg/validate"
)

// Options configures the API server.
type Options struct {
	// History receives a run record per translated material. Nil disables
	// the /runs endpoints.
	History history.Store

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server handles translation and validation requests.
type Server struct {
	router  chi.Router
	history history.Store
	logger  *log.Logger
	lib     *schema.Library
}

// New builds a server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:  chi.NewRouter(),
		history: opts.History,
		logger:  logger,
		lib:     schema.Default(),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/translate", s.handleTranslate)
		r.Post("/validate", s.handleValidate)
		r.Get("/version", s.handleVersion)
		if s.history != nil {
			r.Get("/runs", s.handleRuns)
			r.Get("/runs/{id}", s.handleRun)
		}
	})
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// observe reports request lifecycle events to the registered API hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// MaterialResponse is the translation outcome for a single material.
type MaterialResponse struct {
	Material    string                  `json:"material"`
	Success     bool                    `json:"success"`
	Pattern     string                  `json:"pattern"`
	Document    string                  `json:"document,omitempty"`
	Unsupported []translate.Unsupported `json:"unsupported,omitempty"`
	Skipped     []translate.Skipped     `json:"skipped,omitempty"`
	Errors      []string                `json:"errors,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// TranslateResponse is the body of a successful translate call.
type TranslateResponse struct {
	Materials []MaterialResponse `json:"materials"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	scene, err := source.ReadScene(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	strict := r.URL.Query().Get("strict") == "true"
	tr, err := translate.New(translate.Options{Strict: strict})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	names := scene.Names()
	if only := r.URL.Query().Get("material"); only != "" {
		if _, ok := scene.Graph(only); !ok {
			s.writeError(w, http.StatusNotFound,
				errors.New(errors.ErrCodeMaterialNotFound, "material %q not in scene", only))
			return
		}
		names = []string{only}
	}

	resp := TranslateResponse{Materials: make([]MaterialResponse, 0, len(names))}
	for _, name := range names {
		g, _ := scene.Graph(name)
		start := time.Now()
		res, err := tr.Translate(g)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		resp.Materials = append(resp.Materials, s.materialResponse(res))
		s.record(r, name, res, time.Since(start))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) materialResponse(res *translate.Result) MaterialResponse {
	m := MaterialResponse{
		Material:    res.Material,
		Success:     res.Success,
		Pattern:     res.Pattern.String(),
		Unsupported: res.Unsupported,
		Skipped:     res.Skipped,
	}
	if data, err := mtlxdoc.Marshal(res.Document); err == nil {
		m.Document = string(data)
	}
	if res.Validation != nil {
		for _, it := range res.Validation.Errors {
			m.Errors = append(m.Errors, it.String())
		}
		for _, it := range res.Validation.Warnings {
			m.Warnings = append(m.Warnings, it.String())
		}
	}
	return m
}

func (s *Server) record(r *http.Request, material string, res *translate.Result, dur time.Duration) {
	if s.history == nil {
		return
	}
	run := &history.Run{
		ID:        middleware.GetReqID(r.Context()),
		Material:  material,
		Success:   res.Success,
		Pattern:   res.Pattern.String(),
		CreatedAt: time.Now().UTC(),
		Duration:  dur.Milliseconds(),
	}
	if run.ID == "" {
		run.ID = history.NewRunID()
	}
	for _, u := range res.Unsupported {
		run.Unsupported = append(run.Unsupported, u.Type)
	}
	if res.Validation != nil {
		run.Errors = len(res.Validation.Errors)
		run.Warnings = len(res.Validation.Warnings)
	}
	if err := s.history.Record(r.Context(), run); err != nil {
		s.logger.Warn("record run", "material", material, "err", err)
	}
}

// ValidateResponse is the body of a validate call.
type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := mtlxdoc.Read(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	report := validate.Validate(doc, s.lib)
	resp := ValidateResponse{Valid: report.OK()}
	for _, it := range report.Errors {
		resp.Errors = append(resp.Errors, it.String())
	}
	for _, it := range report.Warnings {
		resp.Warnings = append(resp.Warnings, it.String())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	runs, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.history.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, errors.ErrCodeRunNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]errorBody{"error": {
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
