package service

import (
	"context"
	"time"
)

// acquire reserves one generation slot and counts the request as in
// flight. When all slots are busy the request either fails immediately
// (QueueWait 0) or waits FIFO behind at most QueueDepth other requests for
// up to QueueWait. Returns a release func to be deferred.
func (s *Service) acquire(ctx context.Context) (func(), error) {
	// Fast paths: canceled caller, draining service.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-s.drainCh:
		return nil, drainingError{}
	default:
	}

	// Free slot available right now.
	select {
	case s.slots <- struct{}{}:
		return s.admit()
	default:
	}

	if s.cfg.QueueWait <= 0 {
		return nil, overloadedError{reason: "no free generation slot"}
	}

	// Reserve a queue ticket; a full queue is immediate backpressure.
	select {
	case s.queue <- struct{}{}:
	default:
		return nil, overloadedError{reason: "admission queue full"}
	}
	defer func() { <-s.queue }()
	queueGauge.Inc()
	defer queueGauge.Dec()

	start := time.Now()
	timer := time.NewTimer(s.cfg.QueueWait)
	defer timer.Stop()
	select {
	case s.slots <- struct{}{}:
		queueWaitSeconds.Observe(time.Since(start).Seconds())
		return s.admit()
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.drainCh:
		return nil, drainingError{}
	case <-timer.C:
		return nil, overloadedError{reason: "queue wait exceeded"}
	}
}

// admit counts the caller as in flight, holding the already-acquired slot.
// The state re-check and the WaitGroup increment happen under mu so that
// Close, which moves the state off ready before waiting, can never miss a
// request admitted as drain begins.
func (s *Service) admit() (func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		<-s.slots
		return nil, drainingError{}
	}
	s.inflight.Add(1)
	inflightGauge.Inc()
	return s.release, nil
}

func (s *Service) release() {
	<-s.slots
	inflightGauge.Dec()
	s.inflight.Done()
}
