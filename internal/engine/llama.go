//go:build llama

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaEngine loads a GGUF artifact in-process via go-llama.cpp.
type llamaEngine struct{}

// NewLlama returns the in-process llama.cpp backend.
func NewLlama() Engine { return llamaEngine{} }

// llamaHandle owns the loaded model for the process lifetime.
type llamaHandle struct {
	model   *llama.LLama
	threads int
}

func (llamaEngine) Load(ctx context.Context, spec ModelSpec) (Handle, error) {
	if strings.TrimSpace(spec.Path) == "" {
		return nil, errors.New("model path is empty")
	}
	if _, err := os.Stat(spec.Path); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := llama.New(spec.Path, llama.SetContext(spec.CtxSize))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", spec.Path, err)
	}
	return &llamaHandle{model: m, threads: spec.Threads}, nil
}

func (h *llamaHandle) Generate(ctx context.Context, prompt string, p Params, onToken func(string) error) (Result, error) {
	if h.model == nil {
		return Result{}, errors.New("model not loaded")
	}

	// Bridge the token callback to onToken, count completion tokens and
	// stop as soon as the context is canceled.
	var tokens atomic.Int64
	h.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		tokens.Add(1)
		if onToken != nil {
			if err := onToken(tok); err != nil {
				return false
			}
		}
		return true
	})

	text, err := h.model.Predict(prompt, predictOptions(p, h.threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	n := int(tokens.Load())
	res := Result{Text: text, Tokens: n, FinishReason: "stop"}
	if p.MaxTokens > 0 && n >= p.MaxTokens {
		res.Truncated = true
		res.FinishReason = "length"
	}
	return res, nil
}

func (h *llamaHandle) Close() error {
	if h.model != nil {
		h.model.Free()
		h.model = nil
	}
	return nil
}

// predictOptions maps Params to go-llama.cpp options. The service applies
// defaults before calling Generate, so values are used as-is; an explicit
// temperature of 0 stays 0 for deterministic output.
func predictOptions(p Params, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(intOr(p.MaxTokens, 256)),
		llama.SetThreads(intOr(threads, 4)),
		llama.SetTemperature(p.Temperature),
		llama.SetTopP(p.TopP),
	}
	if p.TopK > 0 {
		po = append(po, llama.SetTopK(p.TopK))
	}
	if p.Seed != 0 {
		po = append(po, llama.SetSeed(int(p.Seed)))
	}
	if len(p.Stop) > 0 {
		po = append(po, llama.SetStopWords(p.Stop...))
	}
	return po
}

func intOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
