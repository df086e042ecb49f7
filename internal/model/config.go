package model

import "textgen/internal/device"

// defaultContextSize applies when HandleConfig.ContextSize is unset.
const defaultContextSize = 2048

// HandleConfig encapsulates everything needed to load the model once.
type HandleConfig struct {
	// ModelPath is the resolved GGUF file.
	ModelPath   string
	ContextSize int
	Device      device.Device
	// Adapter overrides the runtime; nil uses the llama.cpp adapter.
	Adapter Adapter
}

func (c HandleConfig) withDefaults() HandleConfig {
	if c.ContextSize <= 0 {
		c.ContextSize = defaultContextSize
	}
	if c.Adapter == nil {
		c.Adapter = NewLlamaAdapter()
	}
	return c
}
