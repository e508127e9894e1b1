package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/engine"
)

// fakeEngine loads fakeHandles and records load calls.
type fakeEngine struct {
	loadErr error
	handle  *fakeHandle
	loads   atomic.Int64
}

func (f *fakeEngine) Load(ctx context.Context, spec engine.ModelSpec) (engine.Handle, error) {
	f.loads.Add(1)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.handle == nil {
		f.handle = &fakeHandle{}
	}
	return f.handle, nil
}

// fakeHandle simulates generation with a configurable delay and result, and
// tracks the peak number of concurrent Generate calls.
type fakeHandle struct {
	delay  time.Duration
	result engine.Result
	err    error

	mu          sync.Mutex
	calls       int
	inflight    int
	maxInflight int
	lastPrompt  string
	lastParams  engine.Params
	closed      bool
}

func (f *fakeHandle) Generate(ctx context.Context, prompt string, p engine.Params, onToken func(string) error) (engine.Result, error) {
	f.mu.Lock()
	f.calls++
	f.inflight++
	if f.inflight > f.maxInflight {
		f.maxInflight = f.inflight
	}
	f.lastPrompt = prompt
	f.lastParams = p
	delay := f.delay
	res := f.result
	errv := f.err
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return engine.Result{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return engine.Result{}, err
	}
	if errv != nil {
		return engine.Result{}, errv
	}
	return res, nil
}

func (f *fakeHandle) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeHandle) stats() (calls, maxInflight int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.maxInflight
}

func newTestService(t interface{ Fatalf(string, ...any) }, h *fakeHandle, cfg Config) *Service {
	eng := &fakeEngine{handle: h}
	svc, err := New(context.Background(), eng, engine.ModelSpec{Name: "test-model", CtxSize: 512}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}
