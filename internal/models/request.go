package models

import "fmt"

const (
	// DefaultTopK is the number of results returned when a request does not specify one.
	DefaultTopK = 5
	// MaxTopK caps the number of results a single request may ask for.
	MaxTopK = 100
)

// SearchRequest represents a search with optional result count and weights.
// When both weights are zero the engine applies its configured defaults,
// so a request may pin a single model by setting exactly one weight
// (e.g. TFIDFWeight=1, BM25Weight=0 for a pure TF-IDF ranking).
type SearchRequest struct {
	Query       string  `json:"query"`
	TopK        int     `json:"top_k,omitempty"`
	TFIDFWeight float64 `json:"tfidf_weight,omitempty"`
	BM25Weight  float64 `json:"bm25_weight,omitempty"`
}

// Validate normalizes boundary input: an unset TopK gets the default and
// oversized values are capped. An empty query is valid and is not rejected
// here; it simply yields a zero-score ranking.
func (r *SearchRequest) Validate() error {
	if r.TopK < 0 {
		return fmt.Errorf("%w: negative top_k %d", ErrInvalidQuery, r.TopK)
	}
	if r.TFIDFWeight < 0 || r.BM25Weight < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidQuery)
	}
	if r.TopK == 0 {
		r.TopK = DefaultTopK
	}
	if r.TopK > MaxTopK {
		r.TopK = MaxTopK
	}
	return nil
}
