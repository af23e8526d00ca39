// Package server exposes the polyfold pipeline as a JSON HTTP API.
//
// Routes:
//
//	GET  /healthz           build info
//	POST /v1/skeleton       polyhedron -> reconstructed vertices and edges
//	POST /v1/automorphisms  polyhedron -> automorphism artifact
//	POST /v1/expand         {polyhedron, record} -> isomorphic records
//
// Every response that ran a pipeline stage carries the stage's run_id.
// Errors are returned as {"code", "message"} with the status chosen by
// [StatusFor].
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/polyfold/polyfold/pkg/buildinfo"
	perrors "github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/observability"
	"github.com/polyfold/polyfold/pkg/pipeline"
	"github.com/polyfold/polyfold/pkg/polyhedron"
	"github.com/polyfold/polyfold/pkg/skeleton"
	"github.com/polyfold/polyfold/pkg/symmetry"
	"github.com/polyfold/polyfold/pkg/unfold"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 8 << 20

// Server serves the pipeline over HTTP.
type Server struct {
	Runner  *pipeline.Runner
	Logger  *log.Logger
	Options pipeline.Options

	// MaxBodyBytes caps request bodies; 0 means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// New returns a server backed by runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger, opts pipeline.Options) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{Runner: runner, Logger: logger, Options: opts}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/skeleton", s.skeleton)
		r.Post("/automorphisms", s.automorphisms)
		r.Post("/expand", s.expand)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type skeletonResponse struct {
	RunID       string   `json:"run_id"`
	NumVertices int      `json:"num_vertices"`
	NumEdges    int      `json:"num_edges"`
	NumFaces    int      `json:"num_faces"`
	Euler       int      `json:"euler_characteristic"`
	Edges       [][2]int `json:"edges"`
}

type automorphismResponse struct {
	RunID string `json:"run_id"`
	*symmetry.Artifact
	Warnings []symmetry.Warning `json:"warnings"`
}

type expandRequest struct {
	Polyhedron json.RawMessage `json:"polyhedron"`
	Record     *unfold.Record  `json:"record"`
	Dedupe     bool            `json:"dedupe,omitempty"`
}

type expandResponse struct {
	RunID   string           `json:"run_id"`
	Records []*unfold.Record `json:"records"`
}

type errorResponse struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) skeleton(w http.ResponseWriter, r *http.Request) {
	p, err := polyhedron.Read(s.body(w, r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sk, err := s.Runner.Skeleton(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec := sk.Reconstruction
	writeJSON(w, http.StatusOK, skeletonResponse{
		RunID:       sk.RunID,
		NumVertices: rec.Graph.NumVertices,
		NumEdges:    rec.Graph.NumEdges(),
		NumFaces:    rec.NumFaces,
		Euler:       rec.EulerCharacteristic(),
		Edges:       edgeList(rec.Graph),
	})
}

func (s *Server) automorphisms(w http.ResponseWriter, r *http.Request) {
	p, err := polyhedron.Read(s.body(w, r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sk, err := s.Runner.Skeleton(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	auto, err := s.Runner.Automorphisms(r.Context(), sk.Reconstruction.Graph, s.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	warnings := auto.Result.Warnings
	if warnings == nil {
		warnings = []symmetry.Warning{}
	}
	writeJSON(w, http.StatusOK, automorphismResponse{
		RunID:    auto.RunID,
		Artifact: auto.Result.Artifact(),
		Warnings: warnings,
	})
}

func (s *Server) expand(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := json.NewDecoder(s.body(w, r)).Decode(&req); err != nil {
		s.fail(w, r, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if len(req.Polyhedron) == 0 || req.Record == nil {
		s.fail(w, r, perrors.New(perrors.ErrCodeInvalidInput, "request needs both polyhedron and record"))
		return
	}
	p, err := polyhedron.Read(bytes.NewReader(req.Polyhedron))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(req.Record.Faces) == 0 {
		s.fail(w, r, perrors.New(perrors.ErrCodeInvalidInput, "record has no faces"))
		return
	}

	opts := s.Options
	opts.Dedupe = opts.Dedupe || req.Dedupe
	opts.Workers = 1
	res, err := s.Runner.Expand(r.Context(), p, []*unfold.Record{req.Record}, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	records := res.Records
	if records == nil {
		records = []*unfold.Record{}
	}
	writeJSON(w, http.StatusOK, expandResponse{RunID: res.RunID, Records: records})
}

// =============================================================================
// Helpers
// =============================================================================

// StatusFor maps an error to an HTTP status by its code.
func StatusFor(err error) int {
	switch perrors.GetCode(err) {
	case perrors.ErrCodeMalformedInput,
		perrors.ErrCodeInvalidInput,
		perrors.ErrCodeInvalidFormat,
		perrors.ErrCodeInvalidSequence,
		perrors.ErrCodeSequenceMismatch:
		return http.StatusBadRequest
	case perrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	msg := perrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		msg = "internal error"
	} else {
		s.Logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func (s *Server) body(w http.ResponseWriter, r *http.Request) io.Reader {
	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return http.MaxBytesReader(w, r.Body, limit)
}

// observe reports requests to the server hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		dur := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, route, status, dur)
		s.Logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", dur)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func edgeList(g *skeleton.Graph) [][2]int {
	out := make([][2]int, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = [2]int{e.U, e.V}
	}
	return out
}
