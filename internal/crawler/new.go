package crawler

import (
	"net/http"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
)

type implCrawler struct {
	client    *http.Client
	userAgent string
	sites     []Site
	logger    logger.Logger
}

// New creates a Crawler for the supported sites. When client is nil one is
// built with cfg.Timeout.
func New(cfg config.CrawlerConfig, client *http.Client, log logger.Logger) Crawler {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &implCrawler{
		client:    client,
		userAgent: cfg.UserAgent,
		sites:     Sites(),
		logger:    log.With("crawler"),
	}
}
