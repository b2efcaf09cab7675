package models

// SearchResult represents a single search hit with document and scores.
// BM25Score is the per-query max-normalized value, so both component
// scores lie in [0,1] and Score in [0, tfidfWeight+bm25Weight].
type SearchResult struct {
	Document   *Document `json:"document"`
	Score      float64   `json:"score"`
	TFIDFScore float64   `json:"tfidf_score"`
	BM25Score  float64   `json:"bm25_score"`
	Rank       int       `json:"rank"`
}

// SearchResponse is the response for a search request. Total is the
// corpus size (every document is a scoring candidate); Results holds at
// most the requested top-k, sorted by combined score descending with
// ties broken by ascending document index.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}
