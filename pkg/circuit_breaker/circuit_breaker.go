package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed Status = iota + 1
	Open
	HalfOpen
)

var ErrOpenCB = errors.New("circuit breaker is open")

type Settings struct {
	// RecordLength is the size of the window of tracked calls.
	RecordLength int
	// Timeout is how long the breaker stays open before trial calls are let through.
	Timeout time.Duration
	// Percentile of failed calls in the window that opens the breaker.
	Percentile float64
	// RecoveryRequests successful trial calls in a row close the breaker again.
	// At most this many trial calls run at once while half-open.
	RecoveryRequests int
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() Status
	Reset()
}

type circuitBreaker struct {
	mu  sync.Mutex
	cfg Settings
	now func() time.Time

	state    Status
	openedAt time.Time
	window   []bool
	pos      int
	// generation changes on every state transition; results of calls
	// started in an earlier generation are dropped.
	generation uint64
	// trial calls admitted and succeeded in the current half-open generation.
	inFlight  int
	recovered int
}

func New(cfg Settings) CircuitBreaker {
	if cfg.RecordLength <= 0 {
		cfg.RecordLength = 1
	}
	if cfg.RecoveryRequests <= 0 {
		cfg.RecoveryRequests = 1
	}
	return &circuitBreaker{
		cfg:    cfg,
		now:    time.Now,
		state:  Closed,
		window: make([]bool, cfg.RecordLength),
	}
}

func (cb *circuitBreaker) Call(fn func() error) error {
	generation, err := cb.before()
	if err != nil {
		return err
	}

	err = fn()

	cb.after(generation, err)
	return err
}

func (cb *circuitBreaker) before() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) <= cb.cfg.Timeout {
			return 0, ErrOpenCB
		}
		cb.setState(HalfOpen)
	}
	if cb.state == HalfOpen {
		if cb.inFlight >= cb.cfg.RecoveryRequests {
			return 0, ErrOpenCB
		}
		cb.inFlight++
	}
	return cb.generation, nil
}

func (cb *circuitBreaker) after(generation uint64, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if generation != cb.generation {
		return
	}

	if cb.state == HalfOpen {
		cb.inFlight--
		if err != nil {
			cb.trip()
			return
		}
		cb.recovered++
		if cb.recovered >= cb.cfg.RecoveryRequests {
			cb.reset()
		}
		return
	}

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.window)

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.window)) >= cb.cfg.Percentile {
		cb.trip()
	}
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.setState(Open)
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.pos = 0
	cb.setState(Closed)
}

func (cb *circuitBreaker) setState(state Status) {
	cb.state = state
	cb.generation++
	cb.inFlight = 0
	cb.recovered = 0
}
