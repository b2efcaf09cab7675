// Package search provides the hybrid (TF-IDF + BM25) engine and score fusion.
package search

import "sort"

// FusedScore pairs a document index with its combined and component scores.
// BM25Score is the max-normalized value, not the raw one.
type FusedScore struct {
	Index      int
	Score      float64
	TFIDFScore float64
	BM25Score  float64
}

// NormalizeBM25Scores normalizes raw BM25 scores into [0,1] by dividing by
// the maximum score in this query's result set. The normalization is per
// query: the same document can receive different normalized scores across
// queries even with identical raw scores. If the maximum is zero (no term
// matched) the vector stays all zero.
func NormalizeBM25Scores(scores []float64) []float64 {
	normalized := make([]float64, len(scores))
	var maxScore float64
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return normalized
	}
	for i, s := range scores {
		normalized[i] = s / maxScore
	}
	return normalized
}

// Fuse combines the per-document TF-IDF and normalized BM25 score vectors
// with the given weights and returns every document sorted by combined
// score descending, ties broken by ascending document index. Both vectors
// must be indexed identically by document index and have equal length.
func Fuse(tfidfScores, bm25Scores []float64, tfidfWeight, bm25Weight float64) []FusedScore {
	results := make([]FusedScore, len(tfidfScores))
	for i := range tfidfScores {
		results[i] = FusedScore{
			Index:      i,
			TFIDFScore: tfidfScores[i],
			BM25Score:  bm25Scores[i],
			Score:      tfidfWeight*tfidfScores[i] + bm25Weight*bm25Scores[i],
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
	return results
}

// TopK truncates results to at most k entries. k <= 0 yields an empty slice.
func TopK(results []FusedScore, k int) []FusedScore {
	if k <= 0 {
		return nil
	}
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}
