package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	tgerrors "github.com/erfan1375er/highcharts/pkg/errors"
	tgio "github.com/erfan1375er/highcharts/pkg/io"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
	"github.com/erfan1375er/highcharts/pkg/session"
	"github.com/erfan1375er/highcharts/pkg/sink"
	"github.com/erfan1375er/highcharts/pkg/tree"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// chartRequest is the body of POST /charts and POST /render. Records may
// be any shape pkg/io accepts: an array, {"data": [...]} or nodes and edges.
type chartRequest struct {
	Records  json.RawMessage `json:"records"`
	Options  options.Series  `json:"options"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Inverted bool            `json:"inverted"`
	Collapse []string        `json:"collapse"`
	Labels   bool            `json:"labels"`
}

type createResponse struct {
	ID   string        `json:"id"`
	Pass sink.Document `json:"pass"`
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:    "image/svg+xml",
	pipeline.FormatDOTSVG: "image/svg+xml",
	pipeline.FormatJSON:   "application/json",
	pipeline.FormatDOT:    "text/vnd.graphviz",
}

// decodeChart reads a chart request and turns it into pipeline inputs.
func (s *Server) decodeChart(w http.ResponseWriter, r *http.Request) (pipeline.Options, []tree.Record, error) {
	var req chartRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return pipeline.Options{}, nil, badRequest("decode body: %v", err)
	}
	if len(req.Records) == 0 {
		return pipeline.Options{}, nil, badRequest("records are required")
	}
	records, err := tgio.ReadJSON(bytes.NewReader(req.Records))
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	opts := pipeline.Options{
		Width:    req.Width,
		Height:   req.Height,
		Inverted: req.Inverted,
		Collapse: req.Collapse,
		Series:   req.Options,
		Labels:   req.Labels,
		Logger:   s.logger,
	}
	if opts.Width == 0 {
		opts.Width = s.cfg.Width
	}
	if opts.Height == 0 {
		opts.Height = s.cfg.Height
	}
	return opts, records, nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	opts, records, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	series, err := pipeline.Layout(records, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess := session.New(series, s.cfg.SessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("chart created", "id", sess.ID, "records", len(records))
	writeJSON(w, http.StatusCreated, createResponse{ID: sess.ID, Pass: sink.NewDocument(series.Result())})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSeries(w, r, func(ts *treegraph.Series) error {
		writeJSON(w, http.StatusOK, sink.NewDocument(ts.Result()))
		return nil
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	var opts []sink.SVGOption
	if r.URL.Query().Get("labels") != "" {
		opts = append(opts, sink.WithLabels())
	}
	s.withSeries(w, r, func(ts *treegraph.Series) error {
		writeBytes(w, contentTypes[pipeline.FormatSVG], sink.RenderSVG(ts.Result(), opts...))
		return nil
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "node")
	s.updateSeries(w, r, func(ts *treegraph.Series) error {
		return ts.Toggle(node)
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, badRequest("decode body: %v", err))
		return
	}
	s.updateSeries(w, r, func(ts *treegraph.Series) error {
		return ts.Resize(req.Width, req.Height)
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}

	opts, records, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), records, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeBytes(w, contentTypes[format], res.Artifacts[format])
}

// withSeries runs fn against the chart named in the URL, serialized with
// other requests for the same chart. An error from fn is written as the
// response.
func (s *Server) withSeries(w http.ResponseWriter, r *http.Request, fn func(*treegraph.Series) error) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.Do(fn); err != nil {
		s.writeError(w, err)
	}
}

// updateSeries applies fn to the chart named in the URL, stores the
// session again so persistent stores see the change, and responds with
// the new pass.
func (s *Server) updateSeries(w http.ResponseWriter, r *http.Request, fn func(*treegraph.Series) error) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var doc sink.Document
	err = sess.Do(func(ts *treegraph.Series) error {
		if err := fn(ts); err != nil {
			return err
		}
		doc = sink.NewDocument(ts.Result())
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, fmt.Errorf("store chart: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// requestError is a malformed request, reported as 400.
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return http.StatusNotFound
	}

	switch tgerrors.GetCode(err) {
	case tgerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case tgerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case tgerrors.ErrCodeInvalidInput, tgerrors.ErrCodeInvalidOption, tgerrors.ErrCodeInvalidNodeID,
		tgerrors.ErrCodeDuplicateNode, tgerrors.ErrCodeCyclicStructure, tgerrors.ErrCodeUnknownLayout:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	if code := tgerrors.GetCode(err); code != "" {
		resp.Code = string(code)
		resp.Error = tgerrors.UserMessage(err)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		resp.Error = "internal error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
