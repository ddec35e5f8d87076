// Package web fetches live product pages from the HCT website so the
// assistant can supplement indexed documents with current marketing
// copy. A fetch failure never fails a chat turn.
package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// maxPageChars caps how much scraped text is injected into a prompt.
const maxPageChars = 1000

const fetchTimeout = 5 * time.Second

// productPage maps a query keyword to its product page URL. Matching
// is first-hit in declared order, so the more specific spellings come
// first.
type productPage struct {
	keyword string
	url     string
}

var productPages = []productPage{
	{"f-500", "https://hct-world.com/f-500-encapsulator-agent"},
	{"f500", "https://hct-world.com/f-500-encapsulator-agent"},
	{"hydrolock", "https://hct-world.com/hydrolock"},
	{"pinnacle", "https://hct-world.com/pinnacle-foam"},
	{"dust wash", "https://hct-world.com/dust-wash"},
	{"diamond doser", "https://hct-world.com/diamond-doser"},
}

// Fetcher retrieves and cleans product pages.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		logger: slog.Default(),
	}
}

// ContextFor returns stripped page text for the first product page
// whose keyword appears in the query, or "" when no keyword matches or
// the fetch fails.
func (f *Fetcher) ContextFor(ctx context.Context, query string) string {
	q := strings.ToLower(query)
	for _, p := range productPages {
		if !strings.Contains(q, p.keyword) {
			continue
		}
		text, err := f.fetch(ctx, p.url)
		if err != nil {
			f.logger.Warn("product page fetch failed", "url", p.url, "error", err)
			return ""
		}
		return text
	}
	return ""
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	text := stripHTML(string(body))
	if len(text) > maxPageChars {
		text = text[:maxPageChars]
	}
	return text, nil
}

// Pre-compiled expressions for HTML cleanup.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	navTag       = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	footerTag    = regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`)
	headTag      = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// stripHTML drops non-content markup and collapses the remaining text
// to single-spaced prose.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = navTag.ReplaceAllString(content, "")
	content = footerTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
