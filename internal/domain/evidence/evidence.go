package evidence

import (
	"context"
	"fmt"
	"strings"
)

// Result is one search hit, kept in the order the upstream service returned it.
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
}

// Context is the normalized evidence bundle grounding a generated assessment.
// Zero results never appear here; that case is ErrInsufficientEvidence.
type Context struct {
	Answer  string
	Results []Result
}

// Searcher is the narrow capability the pipeline needs from the evidence
// service, so the orchestrator can be tested against deterministic fakes.
type Searcher interface {
	Search(ctx context.Context, query string) (*Context, error)
}

const excerptLen = 200

// FormatContext renders the bundle for the generation prompt: the verbatim
// answer summary, then each result with a 1-based index, title, URL, and the
// first 200 characters of content, in upstream order.
func (c *Context) FormatContext() string {
	var b strings.Builder
	b.WriteString("Medical Research Summary:\n")
	b.WriteString(c.Answer)
	b.WriteString("\n\nSources:\n")

	for i, r := range c.Results {
		// 200 characters, not bytes: truncating mid-rune would feed
		// invalid UTF-8 into the generation prompt.
		excerpt := r.Content
		if runes := []rune(excerpt); len(runes) > excerptLen {
			excerpt = string(runes[:excerptLen])
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   URL: %s\n", r.URL)
		fmt.Fprintf(&b, "   Content: %s...\n\n", excerpt)
	}

	return b.String()
}

// SourceURLs extracts the result URLs, order preserved. The orchestrator
// attaches these to the final result unmodified.
func (c *Context) SourceURLs() []string {
	urls := make([]string, len(c.Results))
	for i, r := range c.Results {
		urls[i] = r.URL
	}
	return urls
}
