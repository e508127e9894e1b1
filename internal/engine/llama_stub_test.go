//go:build !llama

package engine

import (
	"context"
	"errors"
	"testing"
)

func TestLlamaStubRefusesToLoad(t *testing.T) {
	_, err := NewLlama().Load(context.Background(), ModelSpec{Path: "/models/m.gguf"})
	if !errors.Is(err, ErrLlamaNotBuilt) {
		t.Fatalf("expected ErrLlamaNotBuilt, got %v", err)
	}
}
