package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/newscast/internal/models"
)

// Pipeline turns one article URL into a narrated audio file.
type Pipeline interface {
	// Run executes every stage for rawURL. outputName is the file stem; an
	// empty name gets a timestamped default. Only errs.ErrUnsupportedSource,
	// errs.ErrSynthesis and crawl transport errors are returned.
	Run(ctx context.Context, rawURL, outputName string) (models.Result, error)
}
