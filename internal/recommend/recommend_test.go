package recommend

import (
	"context"
	"strings"
	"testing"

	"inferd/internal/service"
	"inferd/pkg/types"
)

type captureGen struct {
	last types.GenerateRequest
	text string
	err  error
}

func (g *captureGen) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	g.last = req
	if g.err != nil {
		return types.GenerateResponse{}, g.err
	}
	return types.GenerateResponse{Text: g.text}, nil
}

func TestRecommendRendersAnswersIntoPrompt(t *testing.T) {
	gen := &captureGen{text: "  Computer Science, Data Science.  "}
	c := New(gen)

	resp, err := c.Recommend(context.Background(), types.RecommendRequest{
		InterestFields:       []string{"technology", "mathematics"},
		Qualities:            []string{"analytical"},
		FreeTimeActivities:   []string{"coding"},
		IntrinsicMotivation:  5,
		IdentifiedRegulation: 3,
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if resp.Recommendation != "Computer Science, Data Science." {
		t.Fatalf("output not trimmed: %q", resp.Recommendation)
	}

	for _, want := range []string{"technology, mathematics", "analytical", "coding"} {
		if !strings.Contains(gen.last.Prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	gen := &captureGen{text: "Medicine."}
	c := New(gen)

	_, err := c.Recommend(context.Background(), types.RecommendRequest{InterestFields: []string{"biology"}})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if gen.last.Temperature == nil || *gen.last.Temperature != 0 {
		t.Fatalf("temperature not pinned to 0: %+v", gen.last.Temperature)
	}
	if gen.last.MaxTokens != recommendMaxTokens {
		t.Fatalf("max tokens: %d", gen.last.MaxTokens)
	}
}

func TestRecommendValidation(t *testing.T) {
	c := New(&captureGen{})

	// No selections at all.
	_, err := c.Recommend(context.Background(), types.RecommendRequest{})
	if !service.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	// Whitespace-only selections do not count.
	_, err = c.Recommend(context.Background(), types.RecommendRequest{InterestFields: []string{"  "}})
	if !service.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	// Likert answers outside 0..5.
	_, err = c.Recommend(context.Background(), types.RecommendRequest{
		InterestFields: []string{"art"},
		Amotivation:    6,
	})
	if !service.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestRecommendPropagatesServiceErrors(t *testing.T) {
	gen := &captureGen{err: service.ErrOverloaded("admission queue full")}
	c := New(gen)

	_, err := c.Recommend(context.Background(), types.RecommendRequest{InterestFields: []string{"law"}})
	if !service.IsOverloaded(err) {
		t.Fatalf("expected overloaded, got %v", err)
	}
}
