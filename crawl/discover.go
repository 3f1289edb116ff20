// Package crawl provides URL discovery and crawling for --all mode.
// It discovers internal pages via sitemap.xml and link extraction,
// keeping crawling logic separate from the ingest pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/calder-ross/pagemd/core"
	"github.com/calder-ross/pagemd/internal/logging"
)

// defaultMaxPages bounds discovery to avoid runaway crawls.
const defaultMaxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// Crawler discovers the internal pages of a site.
type Crawler struct {
	fetcher  core.Fetcher
	limiter  *rate.Limiter
	maxPages int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithRate caps discovery fetches to n per second. Zero disables
// the limiter.
func WithRate(n float64) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithMaxPages caps the number of discovered pages.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// New creates a Crawler that fetches pages through the given fetcher.
func New(fetcher core.Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:  fetcher,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover finds the internal URLs to process starting from baseURL.
// It tries sitemap.xml first, then falls back to BFS link crawling.
// In the fallback, the baseURL itself is always included.
func (c *Crawler) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	domain := parsed.Host
	logger := logging.FromContext(ctx)

	// Try sitemap first.
	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := c.fromSitemap(ctx, sitemap, domain)
	if err == nil && len(urls) > 0 {
		logger.Debug("discovered pages from sitemap",
			logging.FieldURL, sitemap, logging.FieldPages, len(urls))
		return capPages(urls, c.maxPages), nil
	}
	logger.Debug("sitemap unavailable, crawling links",
		logging.FieldURL, sitemap, logging.FieldError, err)

	// Fall back to BFS link crawling.
	return c.fromLinks(ctx, baseURL, domain)
}

// fromSitemap fetches and parses sitemap.xml for internal URLs.
func (c *Crawler) fromSitemap(ctx context.Context, sitemapURL string, domain string) ([]string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal([]byte(result.HTML), &sitemap); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	// Queue only for its dedup; sitemaps repeat URLs more often
	// than you would think.
	queue := NewQueue()
	for _, u := range sitemap.URLs {
		if IsSameDomain(u.Loc, domain) && !IsStaticAsset(u.Loc) {
			queue.Add(NormalizeURL(u.Loc))
		}
	}
	return queue.All(), nil
}

// fromLinks performs BFS crawling to find internal links.
func (c *Crawler) fromLinks(ctx context.Context, startURL string, domain string) ([]string, error) {
	logger := logging.FromContext(ctx)

	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.Seen() < c.maxPages {
		currentURL, ok := queue.Next()
		if !ok {
			break
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		result, err := c.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			// Skip failed pages, don't block the crawl.
			logger.Debug("skipping unreachable page",
				logging.FieldURL, currentURL, logging.FieldError, err)
			continue
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return capPages(queue.All(), c.maxPages), nil
}

// wait blocks until the rate limiter admits the next fetch.
func (c *Crawler) wait(ctx context.Context) error {
	if c.limiter == nil {
		return ctx.Err()
	}
	return c.limiter.Wait(ctx)
}

// capPages truncates urls to at most n entries. The last crawled page
// can push the queue past the cap.
func capPages(urls []string, n int) []string {
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves href against base and keeps only fetchable links.
// Fragment-only hrefs point back at the page itself, and non-HTTP schemes
// (mailto, javascript, tel, data) are not pages.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
