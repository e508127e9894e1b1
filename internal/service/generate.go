package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"inferd/internal/engine"
	"inferd/pkg/types"
)

// Generate validates req, waits for an admission slot and runs one
// generation against the model handle. All failures are request-scoped;
// the error taxonomy in errors.go maps them to HTTP statuses.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	if err := s.validateRequest(req); err != nil {
		generationsTotal.WithLabelValues("invalid").Inc()
		return types.GenerateResponse{}, err
	}
	params := s.paramsFor(req)

	release, err := s.acquire(ctx)
	if err != nil {
		generationsTotal.WithLabelValues(admissionOutcome(err)).Inc()
		return types.GenerateResponse{}, err
	}
	defer release()

	s.mu.RLock()
	handle := s.handle
	s.mu.RUnlock()
	if handle == nil {
		// Close released the handle after the grace period elapsed.
		generationsTotal.WithLabelValues("draining").Inc()
		return types.GenerateResponse{}, drainingError{}
	}

	gctx := ctx
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		gctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := handle.Generate(gctx, req.Prompt, params, nil)
	elapsed := time.Since(start)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			// Caller disconnected or shutdown forced cancellation.
			generationsTotal.WithLabelValues("canceled").Inc()
			return types.GenerateResponse{}, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			generationsTotal.WithLabelValues("timeout").Inc()
			return types.GenerateResponse{}, timeoutError{after: s.cfg.RequestTimeout}
		default:
			// Engine-internal fault: log for operator visibility, but never
			// the prompt content.
			s.log.Error().Err(err).Int("prompt_chars", len(req.Prompt)).Dur("dur", elapsed).Msg("engine failure")
			generationsTotal.WithLabelValues("error").Inc()
			return types.GenerateResponse{}, inferenceError{err: err}
		}
	}

	generationsTotal.WithLabelValues("ok").Inc()
	generationDuration.Observe(elapsed.Seconds())
	tokensOutCounter.Add(float64(res.Tokens))
	s.statsMu.Lock()
	s.requestsTotal++
	s.tokensOutTotal += uint64(res.Tokens)
	s.statsMu.Unlock()

	return types.GenerateResponse{
		Text:       res.Text,
		Tokens:     res.Tokens,
		Truncated:  res.Truncated,
		DurationMS: elapsed.Milliseconds(),
	}, nil
}

func (s *Service) validateRequest(req types.GenerateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return invalidRequestError{msg: "prompt is required"}
	}
	if len(req.Prompt) > s.cfg.MaxPromptChars {
		return invalidRequestError{msg: fmt.Sprintf("prompt exceeds %d characters", s.cfg.MaxPromptChars)}
	}
	if err := s.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return invalidRequestError{msg: fmt.Sprintf("invalid %s: fails %s", jsonFieldName(fe.Field()), constraintString(fe))}
		}
		return invalidRequestError{msg: "invalid request"}
	}
	return nil
}

// paramsFor applies documented defaults and bounds to the request.
func (s *Service) paramsFor(req types.GenerateRequest) engine.Params {
	p := engine.Params{
		MaxTokens: req.MaxTokens,
		TopP:      float32(req.TopP),
		TopK:      req.TopK,
		Stop:      req.Stop,
		Seed:      req.Seed,
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = defaultMaxTokens
	}
	if p.MaxTokens > maxMaxTokens {
		p.MaxTokens = maxMaxTokens
	}
	if req.Temperature != nil {
		p.Temperature = float32(*req.Temperature)
	} else {
		p.Temperature = 0.7
	}
	if p.TopP <= 0 {
		p.TopP = 0.9
	}
	return p
}

func admissionOutcome(err error) string {
	switch {
	case IsOverloaded(err):
		return "overloaded"
	case IsDraining(err):
		return "draining"
	default:
		return "canceled"
	}
}

func constraintString(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// jsonFieldName maps a Go struct field name to its wire name so error
// messages match what the client actually sent.
func jsonFieldName(field string) string {
	switch field {
	case "MaxTokens":
		return "max_tokens"
	case "Temperature":
		return "temperature"
	case "TopP":
		return "top_p"
	case "TopK":
		return "top_k"
	case "Stop":
		return "stop"
	case "Seed":
		return "seed"
	default:
		return strings.ToLower(field)
	}
}
