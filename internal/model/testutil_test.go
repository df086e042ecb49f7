package model

import (
	"context"
	"strings"
	"sync"
)

// fakeAdapter is a lightweight in-memory adapter used for tests.
type fakeAdapter struct {
	loadErr error
	sess    *fakeSession
	gotPath string
	gotOpts LoadOptions
}

func (a *fakeAdapter) Load(modelPath string, opts LoadOptions) (Session, error) {
	a.gotPath, a.gotOpts = modelPath, opts
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	if a.sess == nil {
		a.sess = &fakeSession{}
	}
	return a.sess, nil
}

// fakeSession tokenizes on whitespace and answers with a fixed continuation.
// Faults are injected per stage.
type fakeSession struct {
	mu          sync.Mutex
	tokenizeErr error
	genErr      error
	genPanic    any
	failAfter   int // with genErr, calls that succeed before failing
	reply       string
	calls       int
	lastParams  SampleParams
	closed      int
	onGenerate  func()
}

func (s *fakeSession) Tokenize(text string) ([]int32, error) {
	if s.tokenizeErr != nil {
		return nil, s.tokenizeErr
	}
	fields := strings.Fields(text)
	out := make([]int32, len(fields))
	for i := range fields {
		out[i] = int32(i + 1)
	}
	return out, nil
}

func (s *fakeSession) Generate(ctx context.Context, prompt string, params SampleParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onGenerate != nil {
		s.onGenerate()
	}
	if s.genPanic != nil {
		panic(s.genPanic)
	}
	if s.genErr != nil && s.calls >= s.failAfter {
		return "", s.genErr
	}
	s.calls++
	s.lastParams = params
	if s.reply == "" {
		return " and then", nil
	}
	return s.reply, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func newTestHandle(t interface{ Fatalf(string, ...any) }, sess *fakeSession) *Handle {
	h, err := Load(HandleConfig{ModelPath: "/models/m.gguf", ContextSize: 512, Adapter: &fakeAdapter{sess: sess}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return h
}

func defaultParams(prompt string) Params {
	return Params{Prompt: prompt, MaxLength: 150, Temperature: 0.7, TopP: 0.9, NumReturnSequences: 1}
}
