package news

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TickerDesk/internal/model"
)

// Extractor pulls headline/link pairs out of a search results page.
// Implementations encode the markup assumptions about the news site.
type Extractor interface {
	Extract(r io.Reader, base *url.URL) ([]model.NewsItem, error)
}

// SelectorExtractor matches headline blocks with a CSS selector and takes the
// link from the first anchor inside each block.
type SelectorExtractor struct {
	BlockSelector string
	LinkSelector  string
}

// NewSelectorExtractor creates an extractor; an empty link selector means "a".
func NewSelectorExtractor(block, link string) *SelectorExtractor {
	if link == "" {
		link = "a"
	}
	return &SelectorExtractor{BlockSelector: block, LinkSelector: link}
}

// Extract returns items in document order. Blocks without a link or text are skipped.
func (e *SelectorExtractor) Extract(r io.Reader, base *url.URL) ([]model.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []model.NewsItem
	doc.Find(e.BlockSelector).Each(func(_ int, block *goquery.Selection) {
		href, ok := block.Find(e.LinkSelector).First().Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		headline := strings.TrimSpace(block.Text())
		if headline == "" {
			return
		}
		items = append(items, model.NewsItem{Headline: headline, Link: resolveLink(base, href)})
	})
	return items, nil
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
