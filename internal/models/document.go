// Package models defines core data structures for documents, queries, and search results.
package models

// Document is a single corpus entry. Index is the document's position in
// the corpus; it is zero-based, contiguous, and shared by the TF-IDF
// matrix rows, the BM25 statistics, and result reporting. Documents are
// immutable after load.
type Document struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Text returns the searchable text: title and body combined.
func (d *Document) Text() string {
	return d.Title + " " + d.Body
}
