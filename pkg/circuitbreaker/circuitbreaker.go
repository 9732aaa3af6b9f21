package circuitbreaker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is the breaker state machine position.
type State int

const (
	StateClosed   State = iota // requests pass through
	StateOpen                  // requests fail fast
	StateHalfOpen              // probing whether the upstream recovered
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when the breaker rejects a request without trying.
type ErrOpen struct {
	Name string
}

func (e *ErrOpen) Error() string {
	return fmt.Sprintf("circuit breaker %q is open", e.Name)
}

// Config holds breaker thresholds.
type Config struct {
	FailureThreshold int           // consecutive failures before opening
	SuccessThreshold int           // half-open successes required to close
	Cooldown         time.Duration // open duration before probing
	MaxHalfOpen      int           // concurrent probes allowed while half-open
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Cooldown:         30 * time.Second,
		MaxHalfOpen:      1,
	}
}

// Breaker guards one upstream dependency.
type Breaker struct {
	name   string
	config Config

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	halfOpenInUse int
	openedAt      time.Time
}

func New(name string, config Config) *Breaker {
	return &Breaker{name: name, config: config, state: StateClosed}
}

// Execute runs fn through the breaker, recording its outcome.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if err := b.acquire(); err != nil {
		return err
	}

	err := fn()
	b.record(err == nil)
	if err != nil {
		return fmt.Errorf("%s upstream call failed: %w", b.name, err)
	}
	return nil
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.openedAt) < b.config.Cooldown {
			return &ErrOpen{Name: b.name}
		}
		b.state = StateHalfOpen
		b.successes = 0
		b.halfOpenInUse = 0
		fallthrough
	default: // half-open
		if b.halfOpenInUse >= b.config.MaxHalfOpen {
			return &ErrOpen{Name: b.name}
		}
		b.halfOpenInUse++
		return nil
	}
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.state = StateOpen
			b.openedAt = time.Now()
		}
	case StateHalfOpen:
		b.halfOpenInUse--
		if !success {
			b.state = StateOpen
			b.openedAt = time.Now()
			b.failures = b.config.FailureThreshold
			return
		}
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.state = StateClosed
			b.failures = 0
		}
	}
}

// Group maintains one breaker per named upstream (per platform here).
type Group struct {
	mu       sync.Mutex
	config   Config
	breakers map[string]*Breaker
}

func NewGroup(config Config) *Group {
	return &Group{config: config, breakers: make(map[string]*Breaker)}
}

func (g *Group) Get(name string) *Breaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.breakers[name]
	if !ok {
		b = New(name, g.config)
		g.breakers[name] = b
	}
	return b
}
