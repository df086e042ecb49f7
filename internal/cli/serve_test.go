package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"textgen/internal/config"
	"textgen/internal/model"
	"textgen/pkg/types"
)

type stubAdapter struct {
	loadErr error
	sess    *stubSession
}

func (a *stubAdapter) Load(path string, opts model.LoadOptions) (model.Session, error) {
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	return a.sess, nil
}

// stubSession tokenizes on whitespace and appends a fixed continuation.
type stubSession struct {
	mu     sync.Mutex
	closed bool
}

func (s *stubSession) Tokenize(text string) ([]int32, error) {
	return make([]int32, len(strings.Fields(text))), nil
}

func (s *stubSession) Generate(ctx context.Context, prompt string, p model.SampleParams) (string, error) {
	return " there", nil
}

func (s *stubSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func withStubRuntime(t *testing.T, a *stubAdapter) <-chan string {
	t.Helper()
	addrs := make(chan string, 1)
	oldAdapter, oldListen := newAdapter, listen
	newAdapter = func() model.Adapter { return a }
	listen = func(network, _ string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err == nil {
			addrs <- ln.Addr().String()
		}
		return ln, err
	}
	t.Cleanup(func() { newAdapter, listen = oldAdapter, oldListen })
	return addrs
}

func modelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.gguf"), []byte("GGUF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestServe_GeneratesAndShutsDown(t *testing.T) {
	sess := &stubSession{}
	addrs := withStubRuntime(t, &stubAdapter{sess: sess})
	cfg := config.Config{ModelPath: modelDir(t), Device: "cpu"}.WithDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.New(io.Discard)) }()

	var addr string
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	base := "http://" + addr

	resp, err := http.Post(base+"/generate", "application/json", bytes.NewBufferString(`{"prompt":"hello","num_return_sequences":2}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	var body types.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || body.Status != types.StatusSuccess || len(body.Results) != 2 {
		t.Fatalf("status=%d body=%+v", resp.StatusCode, body)
	}
	if body.Results[0] != "hello there" {
		t.Fatalf("result=%q", body.Results[0])
	}

	resp, err = http.Get(base + "/readyz")
	if err != nil {
		t.Fatalf("readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	if !sess.isClosed() {
		t.Fatalf("model not released on shutdown")
	}
}

func TestServe_StartupFailures(t *testing.T) {
	withStubRuntime(t, &stubAdapter{loadErr: errors.New("bad weights")})
	lg := zerolog.New(io.Discard)

	err := serve(context.Background(), config.Config{ModelPath: modelDir(t), Device: "cpu"}.WithDefaults(), lg)
	if err == nil || !strings.Contains(err.Error(), "bad weights") {
		t.Fatalf("expected load failure, got %v", err)
	}

	err = serve(context.Background(), config.Config{ModelPath: t.TempDir(), Device: "cpu"}.WithDefaults(), lg)
	if err == nil || !strings.Contains(err.Error(), "resolve model") {
		t.Fatalf("expected resolve failure, got %v", err)
	}

	err = serve(context.Background(), config.Config{ModelPath: modelDir(t), Device: "tpu"}.WithDefaults(), lg)
	if err == nil || !strings.Contains(err.Error(), "select device") {
		t.Fatalf("expected device failure, got %v", err)
	}
}
