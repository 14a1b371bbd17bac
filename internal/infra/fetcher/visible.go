package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"article-summarizer/internal/utils/text"
)

// invisibleSelector matches elements whose text is never rendered.
const invisibleSelector = "script, style, noscript, template"

// VisibleTextFetcher returns every visible text node of a page, in document order,
// joined with single spaces. Navigation and footer text is kept.
type VisibleTextFetcher struct {
	downloader *downloader
}

// NewVisibleTextFetcher creates a VisibleTextFetcher. config is assumed valid.
func NewVisibleTextFetcher(config Config) *VisibleTextFetcher {
	return &VisibleTextFetcher{downloader: newDownloader(config)}
}

// FetchContent downloads url and returns its visible text.
func (f *VisibleTextFetcher) FetchContent(ctx context.Context, url string) (string, error) {
	return fetchAndExtract(ctx, f.downloader, ModeVisible, url, func(p *page) (string, error) {
		return ExtractVisibleText(p.body)
	})
}

// ExtractVisibleText parses an HTML document and returns its visible text. Each text node
// is whitespace-normalized and empty nodes are dropped.
func ExtractVisibleText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	doc.Find(invisibleSelector).Remove()

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := text.NormalizeSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	return strings.Join(parts, " "), nil
}
