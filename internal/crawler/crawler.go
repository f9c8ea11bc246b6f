package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nguyentantai21042004/newscast/internal/errs"
	"github.com/nguyentantai21042004/newscast/internal/models"
)

// Crawl resolves the site from the URL host, downloads the page and
// extracts title, description and body paragraphs.
func (c *implCrawler) Crawl(ctx context.Context, rawURL string) (models.Article, error) {
	site, err := c.resolve(rawURL)
	if err != nil {
		return models.Article{}, err
	}

	c.logger.Info(ctx, "Crawling %s article: %s", site.Source, rawURL)
	doc, err := c.fetchDocument(ctx, rawURL)
	if err != nil {
		return models.Article{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	article := extract(doc, site)
	article.URL = rawURL
	c.logger.Debug(ctx, "Extracted %d characters of content", len(article.Content))
	return article, nil
}

func (c *implCrawler) resolve(rawURL string) (Site, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return Site{}, fmt.Errorf("%w: invalid url %q", errs.ErrUnsupportedSource, rawURL)
	}

	host := strings.ToLower(parsed.Hostname())
	for _, site := range c.sites {
		if strings.Contains(host, site.HostKey) {
			return site, nil
		}
	}
	return Site{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedSource, host)
}

func (c *implCrawler) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("site returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extract(doc *goquery.Document, site Site) models.Article {
	var paragraphs []string
	doc.Find(site.Paragraphs).Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return models.Article{
		Title:       cleanText(doc.Find(site.Title).First().Text()),
		Description: cleanText(doc.Find(site.Description).First().Text()),
		Content:     strings.Join(paragraphs, " "),
		Source:      site.Source,
	}
}

// cleanText collapses the whitespace left over from HTML layout.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
