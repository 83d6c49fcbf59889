package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

var breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "resilience_circuit_breaker_state",
	Help: "Current breaker state: 0 closed, 1 half open, 2 open.",
}, []string{"breaker"})

// CircuitOpenError is returned instead of calling through an open breaker.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	wait := max(e.RetryAfter, 0)
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, wait)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, wait)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitOpen     CircuitBreakerState = "open"
	CircuitHalfOpen CircuitBreakerState = "half_open"
)

func (s CircuitBreakerState) gaugeValue() float64 {
	switch s {
	case CircuitHalfOpen:
		return 1
	case CircuitOpen:
		return 2
	default:
		return 0
	}
}

type CircuitBreakerConfig struct {
	Name string

	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int
	// SuccessThreshold half-open successes close it again.
	SuccessThreshold  int
	OpenTimeout       time.Duration
	HalfOpenMaxFlight int

	// CallTimeout bounds every call made through Execute. Zero leaves ctx untouched.
	CallTimeout time.Duration

	// IsFailure decides whether an error counts against the breaker.
	// Nil counts every error. Cancellation by the caller never counts.
	IsFailure func(error) bool

	// OnStateChange runs outside the lock after every transition.
	OnStateChange func(name string, from, to CircuitBreakerState)
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeIgnored
)

// CircuitBreaker stops calling a failing dependency for OpenTimeout, then lets a
// limited number of probe calls through before closing again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	state     CircuitBreakerState
	failures  int
	successes int
	probes    int
	openUntil time.Time
}

type stateChange struct {
	from, to CircuitBreakerState
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 10 * time.Second
	}
	if cfg.HalfOpenMaxFlight <= 0 {
		cfg.HalfOpenMaxFlight = 1
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}

	breakerState.WithLabelValues(cfg.Name).Set(CircuitClosed.gaugeValue())
	return &CircuitBreaker{cfg: cfg, now: time.Now, state: CircuitClosed}
}

func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	change := cb.expireLocked(cb.now())
	state := cb.state
	cb.mu.Unlock()

	cb.publish(change)
	return state
}

// Execute runs fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}

	callCtx := ctx
	if cb.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.cfg.CallTimeout)
		defer cancel()
	}

	err := fn(callCtx)
	cb.settle(cb.classify(ctx, err))
	return err
}

func (cb *CircuitBreaker) classify(parent context.Context, err error) outcome {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, context.Canceled), parent.Err() != nil:
		return outcomeIgnored
	case cb.cfg.IsFailure(err):
		return outcomeFailure
	default:
		return outcomeSuccess
	}
}

// admit reserves a probe slot when half open and rejects calls while open.
func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	now := cb.now()
	change := cb.expireLocked(now)

	var err error
	switch {
	case cb.state == CircuitOpen:
		err = cb.openErrLocked(now)
	case cb.state == CircuitHalfOpen && cb.probes >= cb.cfg.HalfOpenMaxFlight:
		err = cb.openErrLocked(now)
	case cb.state == CircuitHalfOpen:
		cb.probes++
	}
	cb.mu.Unlock()

	cb.publish(change)
	return err
}

func (cb *CircuitBreaker) settle(o outcome) {
	cb.mu.Lock()
	var change *stateChange

	if cb.state == CircuitHalfOpen {
		cb.probes = max(cb.probes-1, 0)
		switch o {
		case outcomeFailure:
			change = cb.moveLocked(CircuitOpen)
		case outcomeSuccess:
			cb.successes++
			if cb.successes >= cb.cfg.SuccessThreshold {
				change = cb.moveLocked(CircuitClosed)
			}
		}
	} else {
		switch o {
		case outcomeSuccess:
			cb.failures = 0
		case outcomeFailure:
			cb.failures++
			if cb.failures >= cb.cfg.FailureThreshold {
				change = cb.moveLocked(CircuitOpen)
			}
		}
	}
	cb.mu.Unlock()

	cb.publish(change)
}

func (cb *CircuitBreaker) expireLocked(now time.Time) *stateChange {
	if cb.state == CircuitOpen && !now.Before(cb.openUntil) {
		return cb.moveLocked(CircuitHalfOpen)
	}
	return nil
}

func (cb *CircuitBreaker) moveLocked(to CircuitBreakerState) *stateChange {
	change := &stateChange{from: cb.state, to: to}
	cb.state = to
	cb.failures, cb.successes, cb.probes = 0, 0, 0
	if to == CircuitOpen {
		cb.openUntil = cb.now().Add(cb.cfg.OpenTimeout)
	}
	return change
}

func (cb *CircuitBreaker) publish(change *stateChange) {
	if change == nil {
		return
	}
	breakerState.WithLabelValues(cb.cfg.Name).Set(change.to.gaugeValue())
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, change.from, change.to)
	}
}

func (cb *CircuitBreaker) openErrLocked(now time.Time) error {
	return &CircuitOpenError{
		Name:       cb.cfg.Name,
		RetryAfter: max(cb.openUntil.Sub(now), 0),
	}
}
