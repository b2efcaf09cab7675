// Package bm25 implements Okapi BM25 scoring over a fixed corpus.
package bm25

import (
	"fmt"
	"math"

	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/tokenizer"
)

// Default BM25 parameters.
const (
	// DefaultK1 controls term-frequency saturation.
	DefaultK1 = 1.5
	// DefaultB controls document-length normalization strength.
	DefaultB = 0.75
)

// Options configures model construction. A zero value selects the defaults.
type Options struct {
	K1 float64
	B  float64
}

// Model holds the immutable BM25 term statistics for a fixed corpus:
// per-term document frequencies, per-document term frequencies, document
// lengths, and the average document length. Unlike the TF-IDF model it
// uses raw terms with no vocabulary cap and no stop-word filtering.
// Safe for concurrent use once built.
type Model struct {
	k1        float64
	b         float64
	docFreq   map[string]int
	termFreqs []map[string]int
	docLens   []int
	avgdl     float64
}

// Build derives the term statistics from the corpus. Returns
// models.ErrEmptyCorpus for an empty corpus.
func Build(docs []models.Document, opts Options) (*Model, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("build bm25 model: %w", models.ErrEmptyCorpus)
	}
	if opts == (Options{}) {
		opts = Options{K1: DefaultK1, B: DefaultB}
	}
	m := &Model{
		k1:        opts.K1,
		b:         opts.B,
		docFreq:   make(map[string]int),
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]int, len(docs)),
	}
	var totalLen int
	for i := range docs {
		terms := tokenizer.Tokenize(docs[i].Text())
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}
		m.termFreqs[i] = tf
		m.docLens[i] = len(terms)
		totalLen += len(terms)
		for t := range tf {
			m.docFreq[t]++
		}
	}
	m.avgdl = float64(totalLen) / float64(len(docs))
	return m, nil
}

// Score returns the raw BM25 score of every document for the query.
// Scores are unbounded above zero; terms absent from the corpus
// contribute nothing, so an empty or fully out-of-vocabulary query
// yields an all-zero vector. Repeated query terms contribute once per
// occurrence.
func (m *Model) Score(query string) []float64 {
	scores := make([]float64, len(m.termFreqs))
	for _, term := range tokenizer.Tokenize(query) {
		df := m.docFreq[term]
		if df == 0 {
			continue
		}
		idf := m.idf(df)
		for i := range m.termFreqs {
			tf := float64(m.termFreqs[i][term])
			if tf == 0 {
				continue
			}
			norm := 1 - m.b + m.b*float64(m.docLens[i])/m.avgdl
			scores[i] += idf * tf * (m.k1 + 1) / (tf + m.k1*norm)
		}
	}
	return scores
}

// idf is the non-negative BM25 inverse document frequency:
// ln((N - df + 0.5) / (df + 0.5) + 1).
func (m *Model) idf(df int) float64 {
	n := float64(len(m.termFreqs))
	return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// AvgDocLength returns the corpus average document length in tokens.
func (m *Model) AvgDocLength() float64 {
	return m.avgdl
}

// Params returns the k1 and b parameters the model was built with.
func (m *Model) Params() (k1, b float64) {
	return m.k1, m.b
}
