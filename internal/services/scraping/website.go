package scraping

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

const (
	websiteTimeout   = 30 * time.Second
	websiteUserAgent = "Mozilla/5.0 (compatible; copydesk/1.0)"
	maxPageBytes     = 5 << 20
)

// websiteScraper fetches a single page and converts it to markdown.
// Used to pull a client's website copy into brand voice analysis.
type websiteScraper struct {
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewWebsiteScraper creates a single-page website scraper.
func NewWebsiteScraper(logger arbor.ILogger) interfaces.WebsiteScraper {
	return &websiteScraper{
		httpClient: &http.Client{
			Timeout: websiteTimeout,
		},
		logger: logger,
	}
}

// ScrapePage fetches the page, extracts its title and same-host links
// and converts the body to markdown.
func (s *websiteScraper) ScrapePage(ctx context.Context, pageURL string) (*models.WebsitePage, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid page URL: %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", websiteUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page fetch returned status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read page body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Navigation, scripts and footers carry no copy worth analyzing
	doc.Find("script, style, nav, footer, noscript").Remove()

	contentHTML, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(contentHTML) == "" {
		contentHTML = string(body)
	}

	converter := md.NewConverter(parsed.Scheme+"://"+parsed.Host, true, nil)
	markdown, err := converter.ConvertString(contentHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert page to markdown: %w", err)
	}

	links := extractLinks(doc, parsed)

	s.logger.Debug().
		Str("url", pageURL).
		Int("markdown_length", len(markdown)).
		Int("links", len(links)).
		Msg("Scraped website page")

	return &models.WebsitePage{
		URL:       pageURL,
		Title:     title,
		Markdown:  strings.TrimSpace(markdown),
		Links:     links,
		FetchedAt: time.Now(),
	}, nil
}

// extractLinks returns absolute same-host links, deduplicated in
// document order.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host != base.Host {
			return
		}
		resolved.Fragment = ""
		link := resolved.String()
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links
}
