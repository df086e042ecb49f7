package httpapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB on zero, got %d", maxBodyBytes)
	}
}

func TestSetMaxBodyBytes_PositiveSetsValue(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(16)
	if maxBodyBytes != 16 {
		t.Fatalf("expected 16, got %d", maxBodyBytes)
	}
	w := postGenerate(t, NewMux(&mockService{}), `{"prompt":"this body is longer than sixteen bytes"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 above configured limit, got %d", w.Code)
	}
}

func TestSetCORSOptions_DefaultsMethodsAndHeaders(t *testing.T) {
	defer SetCORSOptions(false, nil, nil, nil)
	SetCORSOptions(true, []string{"http://a"}, nil, nil)
	if len(corsAllowedMethods) == 0 || len(corsAllowedHeaders) == 0 {
		t.Fatalf("expected defaults, got methods=%v headers=%v", corsAllowedMethods, corsAllowedHeaders)
	}
	SetCORSOptions(true, nil, []string{"POST"}, []string{"X-Custom"})
	if corsAllowedMethods[0] != "POST" || corsAllowedHeaders[0] != "X-Custom" {
		t.Fatalf("explicit values not kept: %v %v", corsAllowedMethods, corsAllowedHeaders)
	}
}

func TestSetStaticDir_ServesFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>custom</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("extra"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetStaticDir(dir)
	defer SetStaticDir("")

	h := NewMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "custom") {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/extra.txt", nil))
	if w.Code != http.StatusOK || w.Body.String() != "extra" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestSetStaticDir_MissingIndex500(t *testing.T) {
	SetStaticDir(t.TempDir())
	defer SetStaticDir("")
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}
