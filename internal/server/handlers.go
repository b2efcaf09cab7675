package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	searchID := uuid.NewString()
	if req.TopK == 0 {
		req.TopK = s.config.Search.DefaultTopK
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, models.ErrInvalidQuery) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.TopK > s.config.Search.MaxTopK {
		req.TopK = s.config.Search.MaxTopK
	}
	s.logger.Debug("search request",
		zap.String("search_id", searchID),
		zap.String("query", req.Query),
		zap.Int("top_k", req.TopK),
	)
	_, engine := s.current()
	response, err := engine.Search(r.Context(), &req)
	if err != nil {
		s.logger.Error("search failed", zap.String("search_id", searchID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "document index must be an integer")
		return
	}
	store, _ := s.current()
	doc := store.Get(index)
	if doc == nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		s.respondError(w, http.StatusServiceUnavailable, "reload not configured")
		return
	}
	store, engine, err := s.reload()
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.SetEngine(store, engine)
	s.logger.Info("corpus reloaded", zap.Int("documents", store.Len()))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "reloaded",
		"documents": store.Len(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	store, engine := s.current()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":       store.Len(),
		"vocabulary_size": engine.VocabularySize(),
		"avg_doc_length":  engine.AvgDocLength(),
		"config": map[string]interface{}{
			"corpus_path":    s.config.Corpus.Path,
			"default_top_k":  s.config.Search.DefaultTopK,
			"tfidf_weight":   s.config.Search.TFIDFWeight,
			"bm25_weight":    s.config.Search.BM25Weight,
			"max_vocabulary": s.config.Search.MaxVocabulary,
			"k1":             s.config.Search.K1,
			"b":              s.config.Search.B,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
