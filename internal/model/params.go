package model

import (
	"math"
	"strings"
)

// MaxReturnSequences caps num_return_sequences per request.
const MaxReturnSequences = 16

// Params is the effective generation request, defaults already applied.
type Params struct {
	Prompt             string
	MaxLength          int
	Temperature        float64
	TopP               float64
	NumReturnSequences int
}

// Validate checks the ranges the runtime accepts. It does not know the
// context size; Handle.Generate checks MaxLength against it.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return ErrInvalidParams("prompt must not be empty")
	}
	if p.MaxLength <= 0 {
		return ErrInvalidParams("max_length must be a positive integer, got %d", p.MaxLength)
	}
	if !(p.Temperature > 0) || math.IsInf(p.Temperature, 0) {
		return ErrInvalidParams("temperature must be a positive number, got %v", p.Temperature)
	}
	if !(p.TopP > 0 && p.TopP <= 1) {
		return ErrInvalidParams("top_p must be in (0, 1], got %v", p.TopP)
	}
	if p.NumReturnSequences <= 0 || p.NumReturnSequences > MaxReturnSequences {
		return ErrInvalidParams("num_return_sequences must be between 1 and %d, got %d", MaxReturnSequences, p.NumReturnSequences)
	}
	return nil
}

// sample converts Params into adapter parameters for a prompt of promptTokens tokens.
func (p Params) sample(promptTokens int) SampleParams {
	return SampleParams{
		MaxNewTokens: p.MaxLength - promptTokens,
		Temperature:  float32(p.Temperature),
		TopP:         float32(p.TopP),
	}
}
