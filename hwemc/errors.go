package hwemc

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the parent of every input error. None of them are
// retryable: they are reported before the chain runs.
var ErrMalformedInput = errors.New("malformed input")

var (
	ErrMalformedTable      = fmt.Errorf("%w: genotype table", ErrMalformedInput)
	ErrMalformedParameters = fmt.Errorf("%w: randomization parameters", ErrMalformedInput)
)
