package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"textgen/internal/device"
	"textgen/internal/httpapi"
	"textgen/internal/model"
	"textgen/internal/registry"
)

// scriptedRuntime stands in for llama.cpp: whitespace tokens and a fixed
// continuation, with an optional failure on the nth Generate call.
type scriptedRuntime struct {
	mu       sync.Mutex
	reply    string
	failOn   int // 1-based Generate call that fails; 0 = never
	failWith error
	calls    int
	closed   bool
}

func (r *scriptedRuntime) Load(path string, opts model.LoadOptions) (model.Session, error) { return r, nil }

func (r *scriptedRuntime) Tokenize(text string) ([]int32, error) {
	return make([]int32, len(strings.Fields(text))), nil
}

func (r *scriptedRuntime) Generate(ctx context.Context, prompt string, p model.SampleParams) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failOn > 0 && r.calls == r.failOn {
		return "", r.failWith
	}
	return r.reply, nil
}

func (r *scriptedRuntime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// createTempModelsDir creates a temporary directory populated with empty .gguf files.
func createTempModelsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

// newServerForDir resolves the single model in modelsDir, loads it through rt
// and serves the API.
func newServerForDir(t *testing.T, modelsDir string, rt *scriptedRuntime) (*httptest.Server, *model.Handle) {
	t.Helper()
	path, err := registry.Resolve(modelsDir)
	if err != nil {
		t.Fatalf("resolve model: %v", err)
	}
	dev, err := device.Detect(device.Options{Kind: device.KindCPU, Threads: 2})
	if err != nil {
		t.Fatalf("detect device: %v", err)
	}
	h, err := model.Load(model.HandleConfig{ModelPath: path, ContextSize: 256, Device: dev, Adapter: rt})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(h))
	t.Cleanup(func() {
		srv.Close()
		_ = h.Close()
	})
	return srv, h
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
