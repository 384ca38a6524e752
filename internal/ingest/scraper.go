package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// WebClause marks pages that came from a scraped site rather than a
// standard document.
const WebClause = "WebContent"

// Scraper flattens standard-body web pages into corpus pages.
type Scraper struct {
	client *http.Client
	log    *zap.Logger
}

func NewScraper(client *http.Client, log *zap.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{client: client, log: log}
}

// Scrape fetches each URL and extracts its visible text. Failures are
// logged and skipped so an unreachable site cannot abort a corpus rebuild.
func (s *Scraper) Scrape(ctx context.Context, urls []string) []Page {
	var pages []Page
	for _, url := range urls {
		text, err := s.fetch(ctx, url)
		if err != nil {
			s.log.Warn("failed to scrape", zap.String("url", url), zap.Error(err))
			continue
		}
		pages = append(pages, Page{
			Source:  url,
			Number:  1,
			Clause:  WebClause,
			Content: text,
		})
		s.log.Info("scraped", zap.String("url", url), zap.Int("bytes", len(text)))
	}
	return pages
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %s", resp.Status)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	collectText(doc, &b)
	return b.String(), nil
}

// collectText walks the parsed document and gathers text nodes, skipping
// script and style subtrees.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
