package search

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/kensaku/internal/bm25"
	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/corpus"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/tfidf"
)

// Engine runs hybrid TF-IDF + BM25 search over a fixed corpus. Both
// models are built once and never mutated, so Search is a pure function
// and the engine may serve concurrent queries without locking.
type Engine struct {
	store  *corpus.Store
	tfidf  *tfidf.Model
	bm25   *bm25.Model
	config *config.SearchConfig
}

// NewEngine creates an engine over pre-built models.
func NewEngine(store *corpus.Store, tfidfModel *tfidf.Model, bm25Model *bm25.Model, cfg *config.SearchConfig) *Engine {
	return &Engine{
		store:  store,
		tfidf:  tfidfModel,
		bm25:   bm25Model,
		config: cfg,
	}
}

// BuildEngine constructs both ranking models from the corpus in parallel
// and returns an engine over them. Fails with models.ErrEmptyCorpus when
// the corpus is empty or has no usable vocabulary terms.
func BuildEngine(store *corpus.Store, cfg *config.SearchConfig) (*Engine, error) {
	docs := store.Documents()
	var (
		tfidfModel *tfidf.Model
		bm25Model  *bm25.Model
	)
	var g errgroup.Group
	g.Go(func() error {
		m, err := tfidf.Build(docs, tfidf.Options{
			MaxVocabulary: cfg.MaxVocabulary,
			StopWords:     tfidf.StopWordSet(cfg.StopWords),
		})
		if err != nil {
			return err
		}
		tfidfModel = m
		return nil
	})
	g.Go(func() error {
		m, err := bm25.Build(docs, bm25.Options{K1: cfg.K1, B: cfg.B})
		if err != nil {
			return err
		}
		bm25Model = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewEngine(store, tfidfModel, bm25Model, cfg), nil
}

// Search scores the query against both models, max-normalizes the BM25
// side, combines with the request weights (falling back to the configured
// defaults when both are zero), and returns the top TopK documents sorted
// by combined score descending with ties broken by ascending index.
// TopK is honored literally: zero yields an empty result list. Zero-score
// documents are retained in the ranking.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	startTime := time.Now()
	tfidfWeight, bm25Weight := req.TFIDFWeight, req.BM25Weight
	if tfidfWeight == 0 && bm25Weight == 0 {
		tfidfWeight, bm25Weight = e.config.TFIDFWeight, e.config.BM25Weight
	}

	tfidfScores := make([]float64, e.store.Len())
	bm25Scores := make([]float64, e.store.Len())
	var wg sync.WaitGroup
	if tfidfWeight > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tfidfScores = e.tfidf.Score(req.Query)
		}()
	}
	if bm25Weight > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bm25Scores = e.bm25.Score(req.Query)
		}()
	}
	wg.Wait()

	fused := TopK(Fuse(tfidfScores, NormalizeBM25Scores(bm25Scores), tfidfWeight, bm25Weight), req.TopK)

	response := &models.SearchResponse{
		Results:   make([]*models.SearchResult, 0, len(fused)),
		Total:     e.store.Len(),
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     req.Query,
	}
	for i, f := range fused {
		response.Results = append(response.Results, &models.SearchResult{
			Document:   e.store.Get(f.Index),
			Score:      f.Score,
			TFIDFScore: f.TFIDFScore,
			BM25Score:  f.BM25Score,
			Rank:       i + 1,
		})
	}
	return response, nil
}

// Store returns the corpus the engine was built over.
func (e *Engine) Store() *corpus.Store {
	return e.store
}

// VocabularySize returns the TF-IDF vocabulary size.
func (e *Engine) VocabularySize() int {
	return e.tfidf.VocabularySize()
}

// AvgDocLength returns the BM25 average document length.
func (e *Engine) AvgDocLength() float64 {
	return e.bm25.AvgDocLength()
}
