// Package cli provides CLI utilities for Kensaku.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// snippetLength is the number of body characters shown per result.
const snippetLength = 200

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nSearch results for: %q (%d candidates, %dms)\n\n",
		response.Query, response.Total, response.QueryTime)
	if len(response.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank %d | Score: %.4f (TF-IDF: %.4f, BM25: %.4f) | Document Index: %d\n",
		result.Rank, result.Score, result.TFIDFScore, result.BM25Score, result.Document.Index)
	fmt.Fprintf(w, "Title: %s\n", result.Document.Title)
	fmt.Fprintf(w, "\n%s\n", utils.Truncate(result.Document.Body, snippetLength))
	fmt.Fprintln(w)
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
