// Package tfidf builds a term-document weight matrix with inverse
// document frequency weighting and scores queries by cosine similarity.
package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/tokenizer"
	"github.com/hyperjump/kensaku/pkg/utils"
)

// DefaultMaxVocabulary bounds the vocabulary size. When the corpus has
// more distinct terms, the most frequent ones are retained.
const DefaultMaxVocabulary = 5000

// Options configures model construction. A zero value selects the defaults.
type Options struct {
	// MaxVocabulary caps the number of vocabulary terms; 0 means DefaultMaxVocabulary.
	MaxVocabulary int
	// StopWords are excluded from the vocabulary; nil means DefaultStopWords.
	StopWords map[string]struct{}
}

// Model is an immutable TF-IDF weight matrix over a fixed corpus. Each
// row is L2-normalized so dot products equal cosine similarity directly.
// Safe for concurrent use once built; nothing mutates it after Build.
type Model struct {
	vocabulary map[string]int    // term -> column index
	idf        []float64         // per column
	rows       []map[int]float64 // one sparse row per document
}

// Build constructs the model from the corpus. Terms are counted over each
// document's combined title+body text; the vocabulary keeps the top
// MaxVocabulary terms by total corpus frequency, ties broken by
// first-seen order. Returns models.ErrEmptyCorpus for an empty corpus or
// when stop-word filtering leaves no vocabulary terms.
func Build(docs []models.Document, opts Options) (*Model, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("build tf-idf model: %w", models.ErrEmptyCorpus)
	}
	maxVocab := opts.MaxVocabulary
	if maxVocab <= 0 {
		maxVocab = DefaultMaxVocabulary
	}
	stopWords := opts.StopWords
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}

	docTerms := make([][]string, len(docs))
	termTotals := make(map[string]int)
	docFreq := make(map[string]int)
	firstSeen := make(map[string]int)
	for i := range docs {
		terms := tokenizer.Tokenize(docs[i].Text())
		docTerms[i] = terms
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			if _, stop := stopWords[t]; stop {
				continue
			}
			if _, ok := firstSeen[t]; !ok {
				firstSeen[t] = len(firstSeen)
			}
			termTotals[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}
	if len(termTotals) == 0 {
		return nil, fmt.Errorf("build tf-idf model: no vocabulary terms after filtering: %w", models.ErrEmptyCorpus)
	}

	retained := selectVocabulary(termTotals, firstSeen, maxVocab)
	m := &Model{
		vocabulary: make(map[string]int, len(retained)),
		idf:        make([]float64, len(retained)),
		rows:       make([]map[int]float64, len(docs)),
	}
	n := float64(len(docs))
	for col, term := range retained {
		m.vocabulary[term] = col
		m.idf[col] = math.Log(n/(1+float64(docFreq[term]))) + 1
	}
	for i, terms := range docTerms {
		row := make(map[int]float64)
		for _, t := range terms {
			if col, ok := m.vocabulary[t]; ok {
				row[col]++
			}
		}
		for col := range row {
			row[col] *= m.idf[col]
		}
		utils.NormalizeL2(row)
		m.rows[i] = row
	}
	return m, nil
}

// selectVocabulary returns up to maxVocab terms ordered by first-seen
// position. Selection is by total corpus frequency descending, ties
// broken by first-seen order, so the result is deterministic.
func selectVocabulary(termTotals map[string]int, firstSeen map[string]int, maxVocab int) []string {
	terms := make([]string, 0, len(termTotals))
	for t := range termTotals {
		terms = append(terms, t)
	}
	if len(terms) > maxVocab {
		sort.Slice(terms, func(i, j int) bool {
			if termTotals[terms[i]] != termTotals[terms[j]] {
				return termTotals[terms[i]] > termTotals[terms[j]]
			}
			return firstSeen[terms[i]] < firstSeen[terms[j]]
		})
		terms = terms[:maxVocab]
	}
	// Column indices follow first-seen order of the retained terms.
	sort.Slice(terms, func(i, j int) bool {
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})
	return terms
}

// Score tokenizes the query, drops out-of-vocabulary terms, builds the
// tf×idf query vector, L2-normalizes it, and returns the dot product
// against every document row. Every score lies in [0,1]. A query with no
// in-vocabulary terms yields an all-zero vector.
func (m *Model) Score(query string) []float64 {
	scores := make([]float64, len(m.rows))
	qvec := make(map[int]float64)
	for _, t := range tokenizer.Tokenize(query) {
		if col, ok := m.vocabulary[t]; ok {
			qvec[col]++
		}
	}
	if len(qvec) == 0 {
		return scores
	}
	for col := range qvec {
		qvec[col] *= m.idf[col]
	}
	utils.NormalizeL2(qvec)
	for i, row := range m.rows {
		var dot float64
		for col, qw := range qvec {
			dot += qw * row[col]
		}
		// Clamp floating point drift so cosine stays in [0,1].
		scores[i] = math.Max(0, math.Min(1, dot))
	}
	return scores
}

// VocabularySize returns the number of vocabulary terms (TF-IDF columns).
func (m *Model) VocabularySize() int {
	return len(m.vocabulary)
}

// InVocabulary reports whether term is a vocabulary dimension.
func (m *Model) InVocabulary(term string) bool {
	_, ok := m.vocabulary[term]
	return ok
}
