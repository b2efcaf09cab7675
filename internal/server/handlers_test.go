package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/corpus"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/search"
)

func testServer(t *testing.T, reload ReloadFunc) *Server {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	store := corpus.NewStore([]models.Document{
		{Title: "Cats and Dogs", Body: "Cats are great pets. Dogs are loyal."},
		{Title: "Stock Market", Body: "The stock market rose today on economic news."},
	})
	engine, err := search.BuildEngine(store, &cfg.Search)
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	return NewServer(engine, store, cfg, zap.NewNop(), reload)
}

func TestHandleSearch(t *testing.T) {
	srv := testServer(t, nil)
	body, _ := json.Marshal(&models.SearchRequest{Query: "cats pets"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	if resp.Results[0].Document.Index != 0 {
		t.Errorf("top result index = %d, want 0", resp.Results[0].Document.Index)
	}
}

func TestHandleSearchInvalidBody(t *testing.T) {
	srv := testServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleSearchNegativeTopK(t *testing.T) {
	srv := testServer(t, nil)
	body, _ := json.Marshal(&models.SearchRequest{Query: "cats", TopK: -3})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleSearchEmptyQueryIsValid(t *testing.T) {
	srv := testServer(t, nil)
	body, _ := json.Marshal(&models.SearchRequest{Query: ""})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (empty query is valid)", w.Code)
	}
}

func docRequest(index string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+index, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("index", index)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleGetDocument(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	srv.handleGetDocument(w, docRequest("1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var doc models.Document
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Title != "Stock Market" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestHandleGetDocumentNotFound(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	srv.handleGetDocument(w, docRequest("42"))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleGetDocumentBadIndex(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	srv.handleGetDocument(w, docRequest("abc"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out struct {
		Documents      int     `json:"documents"`
		VocabularySize int     `json:"vocabulary_size"`
		AvgDocLength   float64 `json:"avg_doc_length"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if out.Documents != 2 {
		t.Errorf("documents = %d, want 2", out.Documents)
	}
	if out.VocabularySize == 0 {
		t.Error("vocabulary_size should be non-zero")
	}
	if out.AvgDocLength <= 0 {
		t.Error("avg_doc_length should be positive")
	}
}

func TestHandleReloadNotConfigured(t *testing.T) {
	srv := testServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	w := httptest.NewRecorder()
	srv.handleReload(w, r)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHandleReloadSwapsEngine(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	bigger := corpus.NewStore([]models.Document{
		{Title: "One", Body: "first document"},
		{Title: "Two", Body: "second document"},
		{Title: "Three", Body: "third document"},
	})
	reload := func() (*corpus.Store, *search.Engine, error) {
		engine, err := search.BuildEngine(bigger, &cfg.Search)
		return bigger, engine, err
	}
	srv := testServer(t, reload)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	w := httptest.NewRecorder()
	srv.handleReload(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	store, _ := srv.current()
	if store.Len() != 3 {
		t.Errorf("store not swapped: len = %d, want 3", store.Len())
	}
}

func TestHandleReloadFailureKeepsEngine(t *testing.T) {
	reload := func() (*corpus.Store, *search.Engine, error) {
		return nil, nil, errors.New("corpus file vanished")
	}
	srv := testServer(t, reload)
	before, _ := srv.current()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	w := httptest.NewRecorder()
	srv.handleReload(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	after, _ := srv.current()
	if after != before {
		t.Error("failed reload must not swap the store")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
