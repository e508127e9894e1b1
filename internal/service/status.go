package service

import (
	"time"

	"inferd/pkg/types"
)

// Status builds a detailed status response for /status.
func (s *Service) Status() types.StatusResponse {
	s.mu.RLock()
	state := s.state
	spec := s.spec
	s.mu.RUnlock()

	s.statsMu.Lock()
	requests := s.requestsTotal
	tokens := s.tokensOutTotal
	s.statsMu.Unlock()

	now := time.Now()
	return types.StatusResponse{
		State: string(state),
		Model: types.ModelStatus{
			Name:    spec.Name,
			Path:    spec.Path,
			CtxSize: spec.CtxSize,
		},
		Inflight:       len(s.slots),
		QueueLen:       len(s.queue),
		Concurrency:    cap(s.slots),
		QueueDepth:     cap(s.queue),
		RequestsTotal:  requests,
		TokensOutTotal: tokens,
		UptimeSeconds:  int64(now.Sub(s.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}
