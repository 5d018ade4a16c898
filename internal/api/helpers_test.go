// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recipebox/internal/recommend"
	"github.com/tomtom215/recipebox/internal/recommend/storage"
)

// flakyStore wraps a MemoryStore and fails saves while failing is set.
type flakyStore struct {
	*storage.MemoryStore
	failing atomic.Bool
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	if s.failing.Load() {
		return errDiskFull
	}
	return s.MemoryStore.SaveActivities(ctx, userID, records)
}

func (s *flakyStore) SaveFeedback(ctx context.Context, userID string, records []recommend.FeedbackRecord) error {
	if s.failing.Load() {
		return errDiskFull
	}
	return s.MemoryStore.SaveFeedback(ctx, userID, records)
}

type testServer struct {
	router http.Handler
	engine *recommend.Engine
	store  *flakyStore
}

// newTestServer builds the full router over an in-memory store with rate
// limiting disabled unless mwCfg says otherwise.
func newTestServer(t *testing.T, mwCfg *ChiMiddlewareConfig) *testServer {
	t.Helper()

	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	activityLog, err := recommend.NewActivityLog(context.Background(), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewActivityLog: %v", err)
	}
	engine, err := recommend.NewEngine(nil, activityLog, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	h, err := NewHandler(engine)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return &testServer{
		router: NewRouter(h, NewChiMiddleware(mwCfg)),
		engine: engine,
		store:  store,
	}
}

// do sends a request with an optional JSON body.
func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with raw data for decoding in tests.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Count *int `json:"count"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// expectError asserts the status and error code of a response.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("code = %q, want %q", env.Error.Code, code)
	}
	return env
}

// candidatesJSON is a small catalog: two thai noodle dishes and one italian.
const candidatesJSON = `[
  {"id": "pad-thai", "category": "thai", "tags": ["noodles", "quick"], "cooking_time": 25, "difficulty": "easy",
   "ingredients": [{"name": "rice noodles"}, {"name": "peanuts"}, {"name": "lime"}]},
  {"id": "drunken-noodles", "category": "thai", "tags": ["noodles", "spicy"], "cooking_time": 30, "difficulty": "medium",
   "ingredients": [{"name": "rice noodles"}, {"name": "basil"}, {"name": "chili"}]},
  {"id": "risotto", "category": "italian", "tags": ["comfort"], "cooking_time": 45, "difficulty": "medium",
   "ingredients": [{"name": "arborio rice"}, {"name": "parmesan"}, {"name": "butter"}]}
]`
