package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"inferd/pkg/types"
)

func TestConcurrencyInvariant(t *testing.T) {
	h := &fakeHandle{delay: 30 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 2, QueueDepth: 16, QueueWait: time.Second})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Generate(context.Background(), types.GenerateRequest{Prompt: "burst"})
		}()
	}
	wg.Wait()

	calls, maxInflight := h.stats()
	if calls != 8 {
		t.Fatalf("expected 8 engine calls, got %d", calls)
	}
	if maxInflight > 2 {
		t.Fatalf("concurrency limit violated: %d in flight", maxInflight)
	}
}

// With a single slot and queueing enabled, the second request waits its
// turn and both succeed.
func TestQueuePolicy(t *testing.T) {
	h := &fakeHandle{delay: 40 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 1, QueueDepth: 4, QueueWait: time.Second})

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Generate(context.Background(), types.GenerateRequest{Prompt: "fifo"})
			errs <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if _, maxInflight := h.stats(); maxInflight != 1 {
		t.Fatalf("expected serialized execution, max inflight %d", maxInflight)
	}
}

// With queueing disabled, the second request is rejected immediately while
// the first is still running.
func TestRejectPolicy(t *testing.T) {
	h := &fakeHandle{delay: 200 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 1, QueueWait: 0})

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.Generate(context.Background(), types.GenerateRequest{Prompt: "first"})
		done <- err
	}()
	<-started
	time.Sleep(20 * time.Millisecond) // let the first request take the slot

	begin := time.Now()
	_, err := svc.Generate(context.Background(), types.GenerateRequest{Prompt: "second"})
	if !IsOverloaded(err) {
		t.Fatalf("expected overloaded, got %v", err)
	}
	if elapsed := time.Since(begin); elapsed > 50*time.Millisecond {
		t.Fatalf("rejection was not immediate: %v", elapsed)
	}
	if err := <-done; err != nil {
		t.Fatalf("first request: %v", err)
	}
}

func TestQueueWaitExceeded(t *testing.T) {
	h := &fakeHandle{delay: 300 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 1, QueueDepth: 4, QueueWait: 30 * time.Millisecond})

	go func() {
		_, _ = svc.Generate(context.Background(), types.GenerateRequest{Prompt: "hog"})
	}()
	time.Sleep(20 * time.Millisecond)

	_, err := svc.Generate(context.Background(), types.GenerateRequest{Prompt: "waiter"})
	if !IsOverloaded(err) {
		t.Fatalf("expected overloaded after queue wait, got %v", err)
	}
}

func TestQueueFull(t *testing.T) {
	h := &fakeHandle{delay: 300 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 1, QueueDepth: 1, QueueWait: time.Second})

	// One request holds the slot, one fills the queue.
	for i := 0; i < 2; i++ {
		go func() {
			_, _ = svc.Generate(context.Background(), types.GenerateRequest{Prompt: "hold"})
		}()
	}
	time.Sleep(50 * time.Millisecond)

	_, err := svc.Generate(context.Background(), types.GenerateRequest{Prompt: "spill"})
	if !IsOverloaded(err) {
		t.Fatalf("expected overloaded on full queue, got %v", err)
	}
}

func TestAcquireCancelWhileQueued(t *testing.T) {
	h := &fakeHandle{delay: 300 * time.Millisecond}
	svc := newTestService(t, h, Config{Concurrency: 1, QueueDepth: 4, QueueWait: time.Second})

	go func() {
		_, _ = svc.Generate(context.Background(), types.GenerateRequest{Prompt: "hog"})
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := svc.Generate(ctx, types.GenerateRequest{Prompt: "queued"})
	if err == nil || IsOverloaded(err) {
		t.Fatalf("expected context error while queued, got %v", err)
	}
	// Queue ticket must be returned.
	if got := len(svc.queue); got != 0 {
		t.Fatalf("queue ticket leaked: %d", got)
	}
}

func TestAcquireCanceledBeforeAdmission(t *testing.T) {
	h := &fakeHandle{}
	svc := newTestService(t, h, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Generate(ctx, types.GenerateRequest{Prompt: "hi"}); err == nil {
		t.Fatalf("expected error on canceled context")
	}
	if calls, _ := h.stats(); calls != 0 {
		t.Fatalf("engine invoked despite canceled context")
	}
}
