//go:build llama

package model

import (
	"context"
	"errors"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

type llamaAdapter struct{}

// NewLlamaAdapter returns the in-process go-llama.cpp runtime.
func NewLlamaAdapter() Adapter { return &llamaAdapter{} }

// llamaSession owns the loaded model. A llama.cpp context holds one KV cache,
// so calls are serialized.
type llamaSession struct {
	mu      sync.Mutex
	model   *llama.LLama
	threads int
}

func (a *llamaAdapter) Load(modelPath string, opts LoadOptions) (Session, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(opts.ContextSize),
	}
	if opts.GPULayers > 0 {
		mo = append(mo, llama.SetGPULayers(opts.GPULayers))
	}
	m, err := llama.New(modelPath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: max(1, opts.Threads)}, nil
}

func (s *llamaSession) Tokenize(text string) ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	_, tokens, err := s.model.TokenizeString(text, llama.SetThreads(s.threads))
	if err != nil {
		// The binding's only failure here is a negative count from an
		// overflowing token buffer.
		return nil, errPromptTooLong(err)
	}
	return tokens, nil
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, params SampleParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return "", errors.New("llama model not initialized")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// Sampling stops at the model's end-of-sequence token; sequences are not
	// batched, so no padding token is involved.
	text, err := s.model.Predict(prompt, mapSampleParamsToPredictOptions(params, s.threads)...)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *llamaSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

func zf(v, def float32) float32 {
	if v > 0 {
		return v
	}
	return def
}

// mapSampleParamsToPredictOptions converts our adapter params into go-llama.cpp options
func mapSampleParamsToPredictOptions(params SampleParams, threads int) []llama.PredictOption {
	return []llama.PredictOption{
		llama.SetTokens(max(1, params.MaxNewTokens)),
		llama.SetThreads(max(1, threads)),
		llama.SetTopP(zf(params.TopP, llama.DefaultOptions.TopP)),
		llama.SetTemperature(zf(params.Temperature, llama.DefaultOptions.Temperature)),
	}
}
