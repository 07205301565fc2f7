package explanation

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized marks provider failures caused by a missing or rejected API key.
	ErrUnauthorized  = errors.New("explanation provider rejected credentials")
	ErrEmptyResponse = errors.New("explanation provider returned no text")
)

// Request is one text generation call.
type Request struct {
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int
	Temperature       float64
}

// Generator turns a prompt into prose.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
