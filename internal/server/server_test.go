package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/erfan1375er/highcharts/internal/config"
	"github.com/erfan1375er/highcharts/pkg/observability"
	"github.com/erfan1375er/highcharts/pkg/session"
	"github.com/erfan1375er/highcharts/pkg/sink"
)

const chartBody = `{"records":[{"id":"A"},{"id":"B","parent":"A"},{"id":"C","parentId":"A"},{"id":"C1","parent":"C"}],"width":400,"height":300}`

func testConfig() *config.Config {
	return &config.Config{
		Addr:         ":0",
		Width:        800,
		Height:       600,
		MaxBodyBytes: 1 << 20,
		SessionTTL:   time.Hour,
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createChart(t *testing.T, h http.Handler) createResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/charts", chartBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /charts = %d: %s", rec.Code, rec.Body)
	}
	var resp createResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig(), nil, nil, nil)
	if rec := do(t, srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
}

func TestChartLifecycle(t *testing.T) {
	srv := New(testConfig(), nil, nil, nil)
	created := createChart(t, srv)

	if created.ID == "" {
		t.Fatal("missing chart id")
	}
	if created.Pass.Visible != 4 || len(created.Pass.Links) != 3 || created.Pass.Width != 400 {
		t.Errorf("initial pass visible=%d links=%d width=%g", created.Pass.Visible, len(created.Pass.Links), created.Pass.Width)
	}

	rec := do(t, srv, http.MethodPost, "/charts/"+created.ID+"/toggle/C", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d: %s", rec.Code, rec.Body)
	}
	var doc sink.Document
	_ = json.NewDecoder(rec.Body).Decode(&doc)
	if doc.Visible != 3 || len(doc.Links) != 2 {
		t.Errorf("after collapsing C visible=%d links=%d, want 3 and 2", doc.Visible, len(doc.Links))
	}

	rec = do(t, srv, http.MethodGet, "/charts/"+created.ID, "")
	_ = json.NewDecoder(rec.Body).Decode(&doc)
	if rec.Code != http.StatusOK || doc.Visible != 3 {
		t.Errorf("GET chart = %d visible=%d, want collapse state kept", rec.Code, doc.Visible)
	}

	rec = do(t, srv, http.MethodGet, "/charts/"+created.ID+"/svg?labels=1", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Errorf("GET svg = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<svg") || !strings.Contains(rec.Body.String(), ">C</text>") {
		t.Errorf("svg body:\n%s", rec.Body)
	}

	rec = do(t, srv, http.MethodPost, "/charts/"+created.ID+"/resize", `{"width":200,"height":100}`)
	_ = json.NewDecoder(rec.Body).Decode(&doc)
	if rec.Code != http.StatusOK || doc.Width != 200 || doc.Height != 100 {
		t.Errorf("resize = %d %gx%g", rec.Code, doc.Width, doc.Height)
	}

	if rec := do(t, srv, http.MethodDelete, "/charts/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("DELETE = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/charts/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET deleted chart = %d, want 404", rec.Code)
	}
}

func TestChartErrors(t *testing.T) {
	srv := New(testConfig(), nil, nil, nil)
	created := createChart(t, srv)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"malformed body", http.MethodPost, "/charts", `{"records":`, http.StatusBadRequest, ""},
		{"missing records", http.MethodPost, "/charts", `{}`, http.StatusBadRequest, ""},
		{"cycle", http.MethodPost, "/charts", `{"records":[{"id":"A","parent":"B"},{"id":"B","parent":"A"}]}`, http.StatusUnprocessableEntity, "CYCLIC_STRUCTURE"},
		{"duplicate", http.MethodPost, "/charts", `{"records":[{"id":"A"},{"id":"A"}]}`, http.StatusUnprocessableEntity, "DUPLICATE_NODE"},
		{"bad option", http.MethodPost, "/charts", `{"records":[{"id":"A"}],"options":{"link":{"type":"zigzag"}}}`, http.StatusUnprocessableEntity, "INVALID_OPTION"},
		{"unknown chart", http.MethodGet, "/charts/nope", "", http.StatusNotFound, ""},
		{"unknown node", http.MethodPost, "/charts/" + created.ID + "/toggle/Z", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad size", http.MethodPost, "/charts/" + created.ID + "/resize", `{"width":0,"height":10}`, http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"bad format", http.MethodPost, "/render?format=png", chartBody, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			var resp errorResponse
			_ = json.NewDecoder(rec.Body).Decode(&resp)
			if resp.Error == "" || resp.Code != tt.code {
				t.Errorf("error body = %+v, want code %q", resp, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv := New(testConfig(), nil, nil, nil)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", `"visible": 4`},
		{"dot", "text/vnd.graphviz", `"C" -> "C1"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/render?format="+tt.format, chartBody)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, rec.Body)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(context.Canceled); got != http.StatusInternalServerError {
		t.Errorf("plain error = %d, want 500", got)
	}
	if got := statusFor(badRequest("x")); got != http.StatusBadRequest {
		t.Errorf("request error = %d, want 400", got)
	}
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *httpRecorder) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func TestObserveReportsRoutePattern(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	srv := New(testConfig(), nil, nil, nil)
	created := createChart(t, srv)
	do(t, srv, http.MethodPost, "/charts/"+created.ID+"/toggle/B", "")

	if len(rec.routes) != 2 || rec.routes[1] != "POST /charts/{id}/toggle/{node}" {
		t.Errorf("routes = %v", rec.routes)
	}
}

// recordStore keeps only session records and rebuilds sessions on Get, the
// way a database-backed store does.
type recordStore struct {
	mu      sync.Mutex
	records map[string]session.Record
	sets    int
}

func (s *recordStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	rec, ok := s.records[id]
	s.mu.Unlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	return session.FromRecord(rec, nil)
}

func (s *recordStore) Set(ctx context.Context, sess *session.Session) error {
	rec := sess.Record()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	s.sets++
	return nil
}

func (s *recordStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *recordStore) Cleanup(ctx context.Context) error { return nil }

func TestChartMutationsPersist(t *testing.T) {
	store := &recordStore{records: make(map[string]session.Record)}
	srv := New(testConfig(), nil, store, nil)
	created := createChart(t, srv)

	if rec := do(t, srv, http.MethodPost, "/charts/"+created.ID+"/toggle/C", ""); rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, srv, http.MethodPost, "/charts/"+created.ID+"/resize", `{"width":200,"height":100}`); rec.Code != http.StatusOK {
		t.Fatalf("resize = %d: %s", rec.Code, rec.Body)
	}

	rec := do(t, srv, http.MethodGet, "/charts/"+created.ID, "")
	var doc sink.Document
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Visible != 3 || doc.Width != 200 || doc.Height != 100 {
		t.Errorf("reloaded chart visible=%d size=%gx%g, want 3 and 200x100", doc.Visible, doc.Width, doc.Height)
	}
	if store.sets != 3 {
		t.Errorf("store.Set called %d times, want 3 (create, toggle, resize)", store.sets)
	}

	if rec := do(t, srv, http.MethodPost, "/charts/"+created.ID+"/toggle/missing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("toggle unknown node = %d, want 404", rec.Code)
	}
	if store.sets != 3 {
		t.Error("a rejected mutation should not be stored")
	}
}
