//go:build !llama

package engine

// This file provides a no-CGO stub for the in-process llama backend. It is
// compiled when the 'llama' build tag is NOT set, keeping default builds and
// CI CGO-free. The real backend lives in llama.go (tagged 'llama').

import (
	"context"
	"errors"
)

// ErrLlamaNotBuilt is returned when the in-process backend is selected but
// the binary was built without the 'llama' tag.
var ErrLlamaNotBuilt = errors.New("llama support not built (missing 'llama' build tag)")

type llamaEngine struct{}

// NewLlama returns the in-process llama.cpp backend. In this build it
// refuses to load: no mocked inference in production binaries.
func NewLlama() Engine { return llamaEngine{} }

func (llamaEngine) Load(ctx context.Context, spec ModelSpec) (Handle, error) {
	return nil, ErrLlamaNotBuilt
}
