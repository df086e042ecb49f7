// Package model owns the process-wide model handle and the single operation
// the service exposes: sampling text continuations for a prompt.
// It is structured into small files by concern:
//
//   - handle.go: Handle lifecycle (Load, Generate, Close) and readiness.
//   - params.go: Params, request validation against runtime limits.
//   - result.go: Result, the explicit success|error outcome of Generate.
//   - errors.go: error types and helpers (IsInvalidParams, IsDependencyUnavailable).
//   - adapter_iface.go: Adapter/Session seam over the model runtime.
//
// Build tags and runtimes:
//
//   - In-process llama (standard):
//     Uses the go-llama.cpp adapter. Enabled with `-tags=llama`.
//     Files: adapter_llama.go, llama_cgo.go (linker rpath hints).
//     A no-CGO stub exists when the tag is not set: adapter_llama_stub.go.
//     Its Load always fails, so a binary built without the tag refuses to
//     start instead of serving fake completions.
//
// The Handle is constructed once at startup and passed to the HTTP layer; it
// holds no locks of its own. Device access is serialized inside the session.
package model
