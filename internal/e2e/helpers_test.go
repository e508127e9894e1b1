package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/engine"
	"inferd/internal/httpapi"
	"inferd/internal/recommend"
	"inferd/internal/service"
)

// stubEngine stands in for a model backend so the full HTTP stack can be
// exercised without weights or a running server.
type stubEngine struct {
	delay time.Duration
	text  string
}

func (e *stubEngine) Load(ctx context.Context, spec engine.ModelSpec) (engine.Handle, error) {
	return &stubHandle{delay: e.delay, text: e.text}, nil
}

type stubHandle struct {
	delay time.Duration
	text  string
}

func (h *stubHandle) Generate(ctx context.Context, prompt string, p engine.Params, onToken func(string) error) (engine.Result, error) {
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
			return engine.Result{}, ctx.Err()
		}
	}
	return engine.Result{Text: h.text, Tokens: len(h.text)}, nil
}

func (h *stubHandle) Close() error { return nil }

func defaultConfig() service.Config {
	return service.Config{Concurrency: 2, QueueDepth: 8, QueueWait: time.Second, DrainTimeout: time.Second}
}

// tinyQueueConfig elicits backpressure deterministically: one slot, a
// one-deep queue and a wait short enough to elapse while the slot is busy.
func tinyQueueConfig() service.Config {
	return service.Config{Concurrency: 1, QueueDepth: 1, QueueWait: 10 * time.Millisecond, DrainTimeout: time.Second}
}

// newServer wires the whole stack behind an httptest server: service with
// the given admission config, counselor, router.
func newServer(t *testing.T, eng engine.Engine, cfg service.Config) (*httptest.Server, *service.Service) {
	t.Helper()
	svc, err := service.New(context.Background(), eng, engine.ModelSpec{Name: "stub-model", CtxSize: 512}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	srv := httptest.NewServer(httpapi.NewMux(svc, recommend.New(svc)))
	t.Cleanup(srv.Close)
	return srv, svc
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
