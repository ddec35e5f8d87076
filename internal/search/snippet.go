package search

import "strings"

const (
	// DefaultSnippetLength is the number of characters included after
	// the first matching term.
	DefaultSnippetLength = 300

	// snippetLeadIn is the number of characters of context kept before
	// the first matching term.
	snippetLeadIn = 100
)

// Snippet extracts a human-readable excerpt of content around the first
// occurrence of any whitespace-separated term of the normalized query.
//
// If no term occurs in content the first windowLength characters are
// returned, trimmed and unmarked. Otherwise the window spans from 100
// characters before the match to windowLength characters after it; an
// ellipsis marker is prefixed when the window does not start at the
// beginning of content and suffixed when it does not reach the end.
//
// This is a single-pass leftmost-match heuristic: it picks the first
// mention rather than the densest passage, which keeps the output
// deterministic for identical inputs.
func Snippet(content, normalizedQuery string, windowLength int) string {
	if windowLength <= 0 {
		windowLength = DefaultSnippetLength
	}

	terms := strings.Fields(strings.ToLower(normalizedQuery))
	lower := strings.ToLower(content)

	earliest := len(content)
	for _, term := range terms {
		if pos := strings.Index(lower, term); pos >= 0 && pos < earliest {
			earliest = pos
		}
	}

	// No term found anywhere: fall back to the start of the document.
	if earliest == len(content) {
		if len(content) > windowLength {
			return strings.TrimSpace(content[:windowLength])
		}
		return strings.TrimSpace(content)
	}

	start := earliest - snippetLeadIn
	if start < 0 {
		start = 0
	}
	end := earliest + windowLength
	if end > len(content) {
		end = len(content)
	}

	snippet := strings.TrimSpace(content[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}
