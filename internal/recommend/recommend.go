// Package recommend turns a student's questionnaire answers into a
// university-major recommendation by prompting the loaded model with a
// RIASEC scoring rubric.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"inferd/internal/service"
	"inferd/pkg/types"
)

// Generator is the slice of the inference service the counselor needs.
type Generator interface {
	Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error)
}

// Counselor renders counselor prompts and runs them through a Generator.
type Counselor struct {
	gen  Generator
	tmpl *template.Template
}

// Generation settings for recommendations: temperature 0 keeps the output
// deterministic for identical answers; the paragraph needs room to breathe.
const recommendMaxTokens = 768

// New returns a Counselor backed by gen.
func New(gen Generator) *Counselor {
	return &Counselor{
		gen:  gen,
		tmpl: template.Must(template.New("counselor").Parse(counselorTemplate)),
	}
}

// promptData holds the answers pre-joined for template rendering.
type promptData struct {
	InterestFields        string
	Qualities             string
	FreeTimeActivities    string
	IntrinsicMotivation   int
	IdentifiedRegulation  int
	IntrojectedRegulation int
	IntegratedRegulation  int
	Amotivation           int
	ExternalRegulation    int
}

// Recommend validates the questionnaire, renders the prompt and asks the
// model for the top-5 majors paragraph.
func (c *Counselor) Recommend(ctx context.Context, req types.RecommendRequest) (types.RecommendResponse, error) {
	if err := validateAnswers(req); err != nil {
		return types.RecommendResponse{}, err
	}

	var sb strings.Builder
	data := promptData{
		InterestFields:        strings.Join(req.InterestFields, ", "),
		Qualities:             strings.Join(req.Qualities, ", "),
		FreeTimeActivities:    strings.Join(req.FreeTimeActivities, ", "),
		IntrinsicMotivation:   req.IntrinsicMotivation,
		IdentifiedRegulation:  req.IdentifiedRegulation,
		IntrojectedRegulation: req.IntrojectedRegulation,
		IntegratedRegulation:  req.IntegratedRegulation,
		Amotivation:           req.Amotivation,
		ExternalRegulation:    req.ExternalRegulation,
	}
	if err := c.tmpl.Execute(&sb, data); err != nil {
		return types.RecommendResponse{}, fmt.Errorf("render prompt: %w", err)
	}

	temp := 0.0
	out, err := c.gen.Generate(ctx, types.GenerateRequest{
		Prompt:      sb.String(),
		MaxTokens:   recommendMaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return types.RecommendResponse{}, err
	}
	return types.RecommendResponse{Recommendation: strings.TrimSpace(out.Text)}, nil
}

func validateAnswers(req types.RecommendRequest) error {
	if !anySelection(req.InterestFields) && !anySelection(req.Qualities) && !anySelection(req.FreeTimeActivities) {
		return service.ErrInvalidRequest("at least one interest field, quality or free-time activity is required")
	}
	for name, v := range map[string]int{
		"intrinsic_motivation":   req.IntrinsicMotivation,
		"identified_regulation":  req.IdentifiedRegulation,
		"introjected_regulation": req.IntrojectedRegulation,
		"integrated_regulation":  req.IntegratedRegulation,
		"amotivation":            req.Amotivation,
		"external_regulation":    req.ExternalRegulation,
	} {
		if v < 0 || v > 5 {
			return service.ErrInvalidRequest(fmt.Sprintf("%s must be between 0 and 5", name))
		}
	}
	return nil
}

func anySelection(vals []string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
