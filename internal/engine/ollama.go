package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// ollamaEngine runs generations against an ollama server. This is the
// default backend for CGO-free builds; the server owns the weights, this
// process owns admission and lifecycle.
type ollamaEngine struct {
	host string
}

// NewOllama returns a backend that talks to the ollama server at host
// (e.g. "http://127.0.0.1:11434").
func NewOllama(host string) Engine {
	return &ollamaEngine{host: host}
}

type ollamaHandle struct {
	client  *api.Client
	model   string
	ctxSize int
}

// Load verifies the server is reachable and the model is present. Both
// checks happen once at startup so a bad deployment fails before the
// service binds its port.
func (e *ollamaEngine) Load(ctx context.Context, spec ModelSpec) (Handle, error) {
	name := spec.Name
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("model name is empty")
	}
	base, err := url.Parse(e.host)
	if err != nil {
		return nil, fmt.Errorf("ollama host: %w", err)
	}
	client := api.NewClient(base, http.DefaultClient)
	if err := client.Heartbeat(ctx); err != nil {
		return nil, fmt.Errorf("ollama server %s unreachable: %w", e.host, err)
	}
	if _, err := client.Show(ctx, &api.ShowRequest{Model: name}); err != nil {
		return nil, fmt.Errorf("model %q not available on %s: %w", name, e.host, err)
	}
	return &ollamaHandle{client: client, model: name, ctxSize: spec.CtxSize}, nil
}

func (h *ollamaHandle) Generate(ctx context.Context, prompt string, p Params, onToken func(string) error) (Result, error) {
	opts := map[string]any{
		"num_predict": p.MaxTokens,
		"temperature": p.Temperature,
		"top_p":       p.TopP,
	}
	if h.ctxSize > 0 {
		opts["num_ctx"] = h.ctxSize
	}
	if p.TopK > 0 {
		opts["top_k"] = p.TopK
	}
	if len(p.Stop) > 0 {
		opts["stop"] = p.Stop
	}
	if p.Seed != 0 {
		opts["seed"] = p.Seed
	}
	stream := true
	req := &api.GenerateRequest{
		Model:   h.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: opts,
	}

	var sb strings.Builder
	var res Result
	err := h.client.Generate(ctx, req, func(r api.GenerateResponse) error {
		if r.Response != "" {
			sb.WriteString(r.Response)
			if onToken != nil {
				if err := onToken(r.Response); err != nil {
					return err
				}
			}
		}
		if r.Done {
			res.Tokens = r.EvalCount
			res.FinishReason = r.DoneReason
			res.Truncated = r.DoneReason == "length"
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	res.Text = sb.String()
	return res, nil
}

// Close is a no-op; the server owns the model lifecycle.
func (h *ollamaHandle) Close() error { return nil }
