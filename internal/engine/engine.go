// Package engine defines the boundary to the model runtime. The service
// treats a backend as opaque: Load turns an on-disk artifact (or a served
// model name) into a Handle exactly once per process, and Generate runs one
// completion against that Handle.
package engine

import "context"

// ModelSpec identifies the one model a process serves.
type ModelSpec struct {
	// Path to the model artifact on disk. Used by the in-process backend.
	Path string
	// Name of the model as served by an external backend (e.g. ollama).
	Name string
	// CtxSize is the context window to configure at load time.
	CtxSize int
	// Threads for the in-process backend; 0 lets the backend decide.
	Threads int
}

// Params captures generation parameters after defaults were applied.
type Params struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
	TopK        int
	Stop        []string
	Seed        int64
}

// Result summarizes one finished generation.
type Result struct {
	Text string
	// Tokens is the completion token count.
	Tokens int
	// Truncated is true when generation stopped at the MaxTokens bound
	// rather than a natural stop condition.
	Truncated bool
	// FinishReason as reported by the backend ("stop", "length", ...).
	FinishReason string
}

// Engine creates model handles. Load is blocking and may take a long time;
// implementations must honor ctx cancellation where the backend allows it.
type Engine interface {
	Load(ctx context.Context, spec ModelSpec) (Handle, error)
}

// Handle is the loaded model. Generate may be called concurrently only up
// to the limit the caller enforces; backends are not assumed thread-safe
// beyond that. onToken, when non-nil, receives each token as it is
// produced; returning an error stops generation.
type Handle interface {
	Generate(ctx context.Context, prompt string, p Params, onToken func(string) error) (Result, error)
	Close() error
}
