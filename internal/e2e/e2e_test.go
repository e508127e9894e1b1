package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"inferd/pkg/types"
)

func TestE2E_GenerateHealthStatus(t *testing.T) {
	srv, _ := newServer(t, &stubEngine{text: "hello from the stub"}, defaultConfig())

	// 1) Readiness is 200 once the model is loaded.
	resp, body := httpGet(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/health status=%d body=%s", resp.StatusCode, string(body))
	}

	// 2) POST /generate returns the generated text.
	resp, body = httpPostJSON(t, srv.URL+"/generate", []byte(`{"prompt":"hello","max_tokens":32}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/generate status=%d body=%s", resp.StatusCode, string(body))
	}
	var gen types.GenerateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		t.Fatalf("/generate json: %v body=%s", err, string(body))
	}
	if gen.Text != "hello from the stub" {
		t.Fatalf("/generate text=%q", gen.Text)
	}

	// 3) /status reflects the served request.
	resp, body = httpGet(t, srv.URL+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status status=%d body=%s", resp.StatusCode, string(body))
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v body=%s", err, string(body))
	}
	if st.State != "ready" || st.Model.Name != "stub-model" {
		t.Fatalf("/status unexpected: %+v", st)
	}
	if st.RequestsTotal < 1 {
		t.Fatalf("/status requests_total=%d", st.RequestsTotal)
	}
}

// TestE2E_Backpressure429 verifies a 429 with the stable overloaded code
// when the queue is full and the wait elapses.
func TestE2E_Backpressure429(t *testing.T) {
	srv, _ := newServer(t, &stubEngine{text: "x", delay: 150 * time.Millisecond}, tinyQueueConfig())

	doGenerate := func() (int, []byte) {
		resp, body := httpPostJSON(t, srv.URL+"/generate", []byte(`{"prompt":"hello"}`))
		return resp.StatusCode, body
	}

	// Three concurrent requests against one slot and a one-deep queue with a
	// short wait: at least one must be rejected.
	type result struct {
		status int
		body   []byte
	}
	done := make(chan result, 3)
	for i := 0; i < 3; i++ {
		go func() {
			s, b := doGenerate()
			done <- result{s, b}
		}()
	}

	var rejected *result
	for i := 0; i < 3; i++ {
		r := <-done
		if r.status == http.StatusTooManyRequests {
			rejected = &r
		}
	}
	if rejected == nil {
		t.Fatalf("expected at least one 429")
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(rejected.body, &er); err != nil {
		t.Fatalf("429 body: %v (%s)", err, string(rejected.body))
	}
	if er.Code != "overloaded" {
		t.Fatalf("429 code=%q", er.Code)
	}
}

func TestE2E_DrainFlipsHealthAndRejects(t *testing.T) {
	srv, svc := newServer(t, &stubEngine{text: "x"}, defaultConfig())

	svc.BeginDrain()

	resp, _ := httpGet(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/health while draining: %d", resp.StatusCode)
	}

	resp, body := httpPostJSON(t, srv.URL+"/generate", []byte(`{"prompt":"late"}`))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/generate while draining: %d body=%s", resp.StatusCode, string(body))
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("503 body: %v", err)
	}
	if er.Code != "unavailable" {
		t.Fatalf("503 code=%q", er.Code)
	}
}

func TestE2E_Recommend(t *testing.T) {
	srv, _ := newServer(t, &stubEngine{text: "Computer Science, Software Engineering."}, defaultConfig())

	resp, body := httpPostJSON(t, srv.URL+"/recommend", []byte(`{
		"interest_fields": ["technology"],
		"qualities": ["analytical"],
		"free_time_activities": ["coding"],
		"intrinsic_motivation": 5
	}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/recommend status=%d body=%s", resp.StatusCode, string(body))
	}
	var rec types.RecommendResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("/recommend json: %v", err)
	}
	if rec.Recommendation == "" {
		t.Fatalf("empty recommendation")
	}
}
