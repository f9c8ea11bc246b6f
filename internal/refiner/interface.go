package refiner

import "context"

// Refiner runs a grammar and spacing pass over narration text. Refine always
// returns usable text: the input comes back unchanged when the pass fails.
type Refiner interface {
	Refine(ctx context.Context, text string) string
}
