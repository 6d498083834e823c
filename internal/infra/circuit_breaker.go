package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards the club backend: after FailureThreshold consecutive outages
// (unreachable, 502, 503, 504) calls fail fast until OpenTimeout elapses,
// then a single probe decides whether the circuit closes again.
//
// States:
//   - Closed:    requests pass through
//   - Open:      requests fail immediately
//   - Half-Open: one probe in flight at a time

type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is wrapped in the BackendError returned while the circuit
// refuses calls.
var ErrCircuitOpen = errors.New("backend: circuit ouvert")

type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive outages to open (default 5)
	SuccessThreshold int           // successful probes to close (default 1)
	OpenTimeout      time.Duration // wait before probing (default 30s)
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{FailureThreshold: 5, SuccessThreshold: 1, OpenTimeout: 30 * time.Second}
}

type CircuitBreaker struct {
	mu        sync.Mutex
	state     CBState
	failures  int
	successes int
	openedAt  time.Time
	probing   bool

	cfg CircuitBreakerConfig
	now func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State reports the current state; an expired open circuit reads half-open.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.avancer()
	return cb.state
}

// must be called under lock
func (cb *CircuitBreaker) avancer() {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.successes = 0
		cb.probing = false
	}
}

// Allow reserves a call. Every allowed call must be followed by Record.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.avancer()
	switch cb.state {
	case CBOpen:
		return ErrCircuitOpen
	case CBHalfOpen:
		if cb.probing {
			return ErrCircuitOpen
		}
		cb.probing = true
	}
	return nil
}

// Record reports the outcome of an allowed call. ok is false only for
// backend outages, not for business errors.
func (cb *CircuitBreaker) Record(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CBClosed:
		if ok {
			cb.failures = 0
			return
		}
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.ouvrir()
		}
	case CBHalfOpen:
		cb.probing = false
		if !ok {
			cb.ouvrir()
			return
		}
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.failures = 0
			cb.successes = 0
		}
	}
}

// must be called under lock
func (cb *CircuitBreaker) ouvrir() {
	cb.state = CBOpen
	cb.openedAt = cb.now()
	cb.failures = 0
	cb.successes = 0
	cb.probing = false
}
