package llm

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/newscast/internal/errs"
)

var (
	errNoGenerator     = fmt.Errorf("%w: no generator configured", errs.ErrBackendUnavailable)
	errEmptyCompletion = errors.New("empty completion")
)
