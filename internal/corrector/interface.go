package corrector

import "context"

// Corrector fixes Vietnamese spelling and diacritics. Pieces the service
// cannot correct are returned unchanged.
type Corrector interface {
	Correct(ctx context.Context, text string) string
}
