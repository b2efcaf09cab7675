// Package integration provides end-to-end tests from corpus file to ranked results.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/corpus"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/search"
)

const fixtureCSV = `Heading,Article
Cats and Dogs,Cats are great pets. Dogs are loyal.
Stock Market,The stock market rose today on economic news.
Space Travel,Rockets carry astronauts to the space station.
,
Pet Nutrition,Healthy pets need balanced food. Cats prefer fish.
`

func buildFixtureEngine(t *testing.T) (*corpus.Store, *search.Engine) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	store, err := corpus.Load(path, cfg.Corpus.TitleColumn, cfg.Corpus.BodyColumn)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	engine, err := search.BuildEngine(store, &cfg.Search)
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	return store, engine
}

func TestIntegration_CorpusLoad(t *testing.T) {
	store, _ := buildFixtureEngine(t)
	// The all-empty row is skipped; four documents remain with contiguous indices.
	if store.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", store.Len())
	}
	for i := 0; i < store.Len(); i++ {
		if store.Get(i).Index != i {
			t.Errorf("document %d has index %d", i, store.Get(i).Index)
		}
	}
}

func TestIntegration_Search(t *testing.T) {
	_, engine := buildFixtureEngine(t)
	resp, err := engine.Search(context.Background(), &models.SearchRequest{Query: "cats pets", TopK: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	top := resp.Results[0].Document
	if top.Index != 0 && top.Index != 3 {
		t.Errorf("top result should be a cat/pet document, got index %d (%s)", top.Index, top.Title)
	}
	if resp.Results[0].Score <= 0 {
		t.Errorf("top score = %f, want > 0", resp.Results[0].Score)
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Score > resp.Results[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestIntegration_QueryRepeatable(t *testing.T) {
	_, engine := buildFixtureEngine(t)
	ctx := context.Background()
	req := &models.SearchRequest{Query: "space rockets market", TopK: 4}
	first, err := engine.Search(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Search(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Results {
		if first.Results[i].Document.Index != second.Results[i].Document.Index ||
			first.Results[i].Score != second.Results[i].Score {
			t.Fatalf("ranking differs between identical queries at position %d", i)
		}
	}
}

func TestIntegration_PureRankings(t *testing.T) {
	_, engine := buildFixtureEngine(t)
	ctx := context.Background()

	tfidfOnly, err := engine.Search(ctx, &models.SearchRequest{Query: "stock news", TopK: 4, TFIDFWeight: 1, BM25Weight: 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range tfidfOnly.Results {
		if r.BM25Score != 0 {
			t.Errorf("bm25 component should be zero with weight 0, got %f", r.BM25Score)
		}
	}
	if tfidfOnly.Results[0].Document.Index != 1 {
		t.Errorf("stock document should rank first, got %d", tfidfOnly.Results[0].Document.Index)
	}

	bm25Only, err := engine.Search(ctx, &models.SearchRequest{Query: "stock news", TopK: 4, TFIDFWeight: 0, BM25Weight: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range bm25Only.Results {
		if r.TFIDFScore != 0 {
			t.Errorf("tf-idf component should be zero with weight 0, got %f", r.TFIDFScore)
		}
	}
	if bm25Only.Results[0].Document.Index != 1 {
		t.Errorf("stock document should rank first, got %d", bm25Only.Results[0].Document.Index)
	}
}

func TestIntegration_OutOfVocabularyQuery(t *testing.T) {
	store, engine := buildFixtureEngine(t)
	resp, err := engine.Search(context.Background(), &models.SearchRequest{Query: "quasar nebula", TopK: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != store.Len() {
		t.Fatalf("len(Results) = %d, want %d", len(resp.Results), store.Len())
	}
	for i, r := range resp.Results {
		if r.Score != 0 {
			t.Errorf("score[%d] = %f, want 0", i, r.Score)
		}
		if r.Document.Index != i {
			t.Errorf("all-zero ranking should follow index order at %d", i)
		}
	}
}
