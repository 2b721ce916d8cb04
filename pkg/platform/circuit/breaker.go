// Package circuit provides a minimal consecutive-failure circuit breaker for
// guarding calls to external collaborators.
//
// State machine:
//   - Closed: calls go to the primary. N consecutive failures open the circuit.
//   - Open: callers should use their fallback path. M consecutive successes
//     (e.g. from background probes) close the circuit again.
//
// A success in the closed state resets the failure count; a failure in the
// open state resets the success count.
package circuit

import "sync"

// State identifies the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// StateChange reports whether a recorded result transitioned the breaker.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker tracks consecutive failures against a named collaborator.
// Safe for concurrent use.
type Breaker struct {
	mu               sync.Mutex
	name             string
	state            State
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) { b.failureThreshold = n }
}

// WithSuccessThreshold sets how many consecutive successes close an open circuit.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) { b.successThreshold = n }
}

// New constructs a closed breaker with default thresholds (5 failures to open,
// 3 successes to close).
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 3,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the collaborator name this breaker guards.
func (b *Breaker) Name() string { return b.name }

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// IsOpen reports whether callers should take their fallback path.
func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// RecordFailure notes a failed primary call. It returns whether the caller
// should now use the fallback, and whether this call changed the state.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.successCount = 0

	if b.state == StateOpen {
		return true, StateChange{}
	}
	if b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess notes a successful primary call. It returns whether the
// primary is usable (circuit closed), and whether this call changed the state.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			return true, StateChange{Closed: true}
		}
		return false, StateChange{}
	}

	b.failureCount = 0
	return true, StateChange{}
}

// Reset forces the breaker closed and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
}
