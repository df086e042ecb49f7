package model

import "context"

// Adapter abstracts the model runtime used by the Handle.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type Adapter interface {
	// Load reads the model at modelPath onto the configured device.
	Load(modelPath string, opts LoadOptions) (Session, error)
}

// Session is a loaded model: tokenizer and weights bound to a device.
type Session interface {
	// Tokenize encodes text into the model's token ids.
	Tokenize(text string) ([]int32, error)
	// Generate samples one continuation of prompt and returns it decoded,
	// special tokens stripped. The prompt itself is not included.
	Generate(ctx context.Context, prompt string, params SampleParams) (string, error)
	// Close releases any resources associated with the session.
	Close() error
}

// LoadOptions are fixed for the lifetime of a session.
type LoadOptions struct {
	ContextSize int
	Threads     int
	GPULayers   int
}

// SampleParams captures generation parameters passed to the adapter.
type SampleParams struct {
	MaxNewTokens int
	Temperature  float32
	TopP         float32
}

// RuntimeAvailable reports whether this binary links a real model runtime
// (built with -tags=llama).
func RuntimeAvailable() bool { return llamaBuilt }
