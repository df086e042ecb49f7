package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"textgen/internal/device"
	"textgen/pkg/types"
)

// Handle pairs a loaded tokenizer and model bound to a compute device.
// It is read-only after Load and safe for concurrent use.
type Handle struct {
	sess        Session
	modelPath   string
	contextSize int
	dev         device.Device
	loadedAt    time.Time
	closed      atomic.Bool
}

// Load reads the model once. Failures are fatal for the caller: there is no
// degraded mode without a model.
func Load(cfg HandleConfig) (*Handle, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	sess, err := cfg.Adapter.Load(cfg.ModelPath, LoadOptions{
		ContextSize: cfg.ContextSize,
		Threads:     cfg.Device.Threads,
		GPULayers:   cfg.Device.GPULayers,
	})
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
	}
	return &Handle{
		sess:        sess,
		modelPath:   cfg.ModelPath,
		contextSize: cfg.ContextSize,
		dev:         cfg.Device,
		loadedAt:    time.Now(),
	}, nil
}

// Generate samples p.NumReturnSequences continuations of p.Prompt. Every
// failure, including a panic in the runtime binding, is reported in the
// returned Result; nothing is retried and partial results are dropped.
//
// The context is checked before each sequence starts. A sequence already
// running on the device is never interrupted.
func (h *Handle) Generate(ctx context.Context, p Params) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(p, &GenerationError{Op: "generate", Err: fmt.Errorf("runtime panic: %v", r)})
		}
	}()
	if err := p.Validate(); err != nil {
		return failed(p, err)
	}
	if p.MaxLength > h.contextSize {
		return failed(p, ErrInvalidParams("max_length %d exceeds the model context size %d", p.MaxLength, h.contextSize))
	}
	if h.closed.Load() {
		return failed(p, ErrDependencyUnavailable("model handle is closed"))
	}

	tokens, err := h.sess.Tokenize(p.Prompt)
	if err != nil {
		return failed(p, &GenerationError{Op: "encode", Err: err})
	}
	if len(tokens) >= p.MaxLength {
		return failed(p, ErrInvalidParams("prompt is %d tokens, max_length %d leaves no room to generate", len(tokens), p.MaxLength))
	}
	sp := p.sample(len(tokens))

	var texts []string
	for i := 0; i < p.NumReturnSequences; i++ {
		if err := ctx.Err(); err != nil {
			return failed(p, &GenerationError{Op: "generate", Err: err})
		}
		out, err := h.sess.Generate(ctx, p.Prompt, sp)
		if err != nil {
			return failed(p, &GenerationError{Op: "generate", Err: err})
		}
		// Decoding the full sequence yields the prompt followed by the continuation.
		texts = append(texts, p.Prompt+out)
	}
	return Result{Texts: texts, Params: p}
}

// Ready reports whether the handle can serve generations.
func (h *Handle) Ready() bool { return h != nil && !h.closed.Load() }

// Info describes the loaded model for GET /info.
func (h *Handle) Info() types.InfoResponse {
	return types.InfoResponse{
		ModelPath:    h.modelPath,
		ContextSize:  h.contextSize,
		Device:       h.dev.Info(),
		Defaults:     types.DefaultGenerateRequest(),
		LoadedAtUnix: h.loadedAt.Unix(),
	}
}

// Close releases the model. It must only be called once no requests are in
// flight (after the HTTP server has shut down). Subsequent calls are no-ops.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	return h.sess.Close()
}
