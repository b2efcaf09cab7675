package models

import "errors"

// ErrEmptyCorpus is returned when model construction is attempted on an
// empty corpus, or on one that has zero usable vocabulary terms after
// stop-word filtering. Fatal to the build call; there is nothing to retry.
var ErrEmptyCorpus = errors.New("corpus is empty")

// ErrInvalidQuery is reserved for query input that is malformed at the
// boundary. Empty or whitespace-only queries are valid and produce
// zero-score rankings, not an error.
var ErrInvalidQuery = errors.New("invalid query")
