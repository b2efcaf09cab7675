// Package tokenizer provides the lowercase whitespace tokenization shared
// by both ranking models.
package tokenizer

import "strings"

// Tokenize lowercases s and splits it on Unicode whitespace. No stemming,
// punctuation stripping, or stop-word removal happens at this layer.
// Deterministic and pure; empty or all-whitespace input yields an empty slice.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
