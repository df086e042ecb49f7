//go:build !llama

package model

// This file provides a no-CGO stub for the llama adapter. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real adapter lives in adapter_llama.go (tagged 'llama').

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// llamaAdapter refuses to load anything, so a binary without the runtime
// fails at startup instead of serving mocked completions.
type llamaAdapter struct{}

// NewLlamaAdapter returns the stub runtime.
func NewLlamaAdapter() Adapter { return &llamaAdapter{} }

func (a *llamaAdapter) Load(modelPath string, opts LoadOptions) (Session, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
