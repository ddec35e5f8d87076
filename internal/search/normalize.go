package search

import (
	"regexp"
	"strings"
)

// rewrite is a single case-insensitive pattern-to-literal substitution
// applied during query normalization.
type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// Product names appear in the source documents in a canonical
// hyphenated or compound form, while users type spaced or concatenated
// variants. Rewriting the query guarantees its tokens line up with the
// indexed tokens without fuzzy matching. Rules run in order; later
// rules see the already-rewritten string.
var rewrites = []rewrite{
	{regexp.MustCompile(`\bf\s*500\b`), "f-500"},
	{regexp.MustCompile(`\bf500\b`), "f-500"},
	{regexp.MustCompile(`\bhydro\s*lock\b`), "hydrolock"},
	{regexp.MustCompile(`\bpinnacle\s*foam\b`), "pinnacle"},
	{regexp.MustCompile(`\bdust\s*wash\b`), "dust-wash"},
}

// Normalize lowercases a raw query and rewrites known product name
// variants ("f 500", "f500", "hydro lock", ...) to the canonical form
// used in the indexed documents. Normalize is idempotent.
func Normalize(query string) string {
	normalized := strings.ToLower(query)
	for _, r := range rewrites {
		normalized = r.pattern.ReplaceAllString(normalized, r.replacement)
	}
	return normalized
}
