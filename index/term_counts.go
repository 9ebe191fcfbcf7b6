package index

// TermCounts maps each distinct word of a token sequence to its raw occurrence count.
// Used for term-frequency scoring where every occurrence counts, unlike document frequency
// which only records presence.
type TermCounts map[string]int

// CountTerms builds the TermCounts of a token sequence.
func CountTerms(tokens []string) TermCounts {
	counts := make(TermCounts, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// Contains reports whether word occurs at least once.
func (tc TermCounts) Contains(word string) bool {
	return tc[word] > 0
}
