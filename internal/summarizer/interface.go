package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/newscast/internal/models"
)

// Summarizer condenses an article into narration body text. It never fails:
// when the backend is unusable it degrades to an extractive summary.
type Summarizer interface {
	Summarize(ctx context.Context, article models.Article) models.Summary
}
