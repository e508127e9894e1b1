package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"inferd/internal/engine"
)

// State is the one-way lifecycle of the service.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateDraining State = "draining"
	StateStopped  State = "stopped"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultQueueDepth     = 32
	defaultMaxPromptChars = 32 << 10
	defaultMaxTokens      = 256
	maxMaxTokens          = 4096
)

// Config encapsulates all tunables for Service construction.
type Config struct {
	// Concurrency is the number of generation calls allowed to run against
	// the model at once. Defaults to 1: engine thread-safety is not assumed
	// unless the operator raises this explicitly.
	Concurrency int
	// QueueDepth bounds requests waiting for a slot.
	QueueDepth int
	// QueueWait bounds how long a request may wait for a slot. Zero means
	// reject immediately when all slots are busy.
	QueueWait time.Duration
	// RequestTimeout bounds one generation call. Zero disables.
	RequestTimeout time.Duration
	// MaxPromptChars bounds the accepted prompt length.
	MaxPromptChars int
	// DrainTimeout bounds how long Close waits for in-flight work.
	DrainTimeout time.Duration
}

// Service owns the single loaded model handle and coordinates validated,
// admission-bounded access to it for the process lifetime.
type Service struct {
	mu     sync.RWMutex
	state  State
	handle engine.Handle
	spec   engine.ModelSpec

	cfg      Config
	slots    chan struct{} // in-flight generation slots
	queue    chan struct{} // waiters for a slot
	drainCh  chan struct{} // closed once when draining begins
	drainOne sync.Once
	inflight sync.WaitGroup

	validate  *validator.Validate
	log       zerolog.Logger
	startTime time.Time

	statsMu        sync.Mutex
	requestsTotal  uint64
	tokensOutTotal uint64
}

// New loads the model via eng and returns a ready Service. A load failure
// is fatal at the caller: the process must not begin accepting connections.
func New(ctx context.Context, eng engine.Engine, spec engine.ModelSpec, cfg Config, log zerolog.Logger) (*Service, error) {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = defaultQueueDepth
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = defaultMaxPromptChars
	}

	start := time.Now()
	log.Info().Str("model", spec.Name).Str("path", spec.Path).Msg("loading model")
	h, err := eng.Load(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("model load: %w", err)
	}
	log.Info().Dur("took", time.Since(start)).Msg("model loaded")

	return &Service{
		state:     StateReady,
		handle:    h,
		spec:      spec,
		cfg:       cfg,
		slots:     make(chan struct{}, cfg.Concurrency),
		queue:     make(chan struct{}, cfg.QueueDepth),
		drainCh:   make(chan struct{}),
		validate:  validator.New(),
		log:       log,
		startTime: time.Now(),
	}, nil
}

// Ready reports whether the service is accepting generation requests.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginDrain stops admitting new work. Queued waiters are rejected,
// in-flight generations are left to finish. Idempotent.
func (s *Service) BeginDrain() {
	s.drainOne.Do(func() {
		s.mu.Lock()
		if s.state == StateReady {
			s.state = StateDraining
		}
		s.mu.Unlock()
		close(s.drainCh)
		s.log.Info().Msg("drain started")
	})
}

// Close drains, waits up to DrainTimeout for in-flight work, then releases
// the model handle. The service is unusable afterwards.
func (s *Service) Close() error {
	s.BeginDrain()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	if s.cfg.DrainTimeout > 0 {
		select {
		case <-done:
		case <-time.After(s.cfg.DrainTimeout):
			s.log.Warn().Dur("grace", s.cfg.DrainTimeout).Msg("drain grace period elapsed with work in flight")
		}
	} else {
		<-done
	}

	s.mu.Lock()
	s.state = StateStopped
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h != nil {
		return h.Close()
	}
	return nil
}
