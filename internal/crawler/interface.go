package crawler

import (
	"context"

	"github.com/nguyentantai21042004/newscast/internal/models"
)

// Crawler fetches one article page and extracts its text. URLs whose host
// matches no known site fail with errs.ErrUnsupportedSource.
type Crawler interface {
	Crawl(ctx context.Context, rawURL string) (models.Article, error)
}
