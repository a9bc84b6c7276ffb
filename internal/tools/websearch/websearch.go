// Package websearch gives the legal researcher agent a web search tool. It
// queries the DuckDuckGo HTML endpoint and scrapes the result list, so no
// extra API key is needed.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const defaultEndpoint = "https://html.duckduckgo.com/html/"

type Config struct {
	Endpoint   string
	MaxResults int
	RateLimit  float64 // searches per second
	Timeout    time.Duration
}

type DuckDuckGo struct {
	endpoint   string
	maxResults int
	client     *http.Client
	limiter    *rate.Limiter
}

type Result struct {
	Title   string
	Link    string
	Snippet string
}

func New(cfg Config) *DuckDuckGo {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1.0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &DuckDuckGo{
		endpoint:   cfg.Endpoint,
		maxResults: cfg.MaxResults,
		client:     &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// Name and Description satisfy the langchaingo tools.Tool interface.
func (d *DuckDuckGo) Name() string {
	return "web_search"
}

func (d *DuckDuckGo) Description() string {
	return "搜索互联网上的法律案例、判例和监管信息。输入应为搜索查询文本。"
}

// Call runs the search and formats the top results as a plain-text block for
// prompt interpolation.
func (d *DuckDuckGo) Call(ctx context.Context, input string) (string, error) {
	results, err := d.Search(ctx, input)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "没有找到相关的搜索结果。", nil
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Link, r.Snippet)
	}
	return strings.TrimSpace(b.String()), nil
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; legalteam/1.0)")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search response status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results failed: %w", err)
	}

	var results []Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := s.Find(".result__a")
		link, _ := title.Attr("href")
		r := Result{
			Title:   strings.TrimSpace(title.Text()),
			Link:    link,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
		}
		if r.Title == "" {
			return true
		}
		results = append(results, r)
		return len(results) < d.maxResults
	})
	return results, nil
}
