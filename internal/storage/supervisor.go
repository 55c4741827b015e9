// Package storage tracks whether the backing database can take work.
package storage

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// State follows the readyState numbering reported by the health endpoint.
type State int32

const (
	StateDisconnected  State = 0
	StateConnected     State = 1
	StateConnecting    State = 2
	StateDisconnecting State = 3
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Readiness is what request paths consult before touching the store.
type Readiness interface {
	State() State
	Ready() bool
}

type Options struct {
	Name         string
	RetryDelay   time.Duration
	PingTimeout  time.Duration
	PingInterval time.Duration
	// MaxAttempts bounds the initial connect loop; 0 retries forever.
	MaxAttempts int
	// OnConnect runs after every successful (re)connect, e.g. to ensure indexes.
	OnConnect func(ctx context.Context) error
}

type Supervisor struct {
	pinger Pinger
	opts   Options
	state  atomic.Int32
}

func NewSupervisor(pinger Pinger, opts Options) *Supervisor {
	if opts.Name == "" {
		opts.Name = "database"
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 3 * time.Second
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 30 * time.Second
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 10 * time.Second
	}
	return &Supervisor{pinger: pinger, opts: opts}
}

func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) Ready() bool {
	return s.State() == StateConnected
}

func (s *Supervisor) setState(st State) {
	s.state.Store(int32(st))
}

// Run connects with retry, then keeps pinging until ctx is canceled.
// It returns an error only when MaxAttempts is exhausted.
func (s *Supervisor) Run(ctx context.Context) error {
	defer s.setState(StateDisconnected)

	if err := s.connect(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		s.setState(StateDisconnecting)
		return nil
	}

	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.setState(StateDisconnecting)
			log.Printf("%s: shutting down connection supervisor", s.opts.Name)
			return nil
		case <-ticker.C:
			err := s.ping(ctx)
			switch {
			case err == nil && !s.Ready():
				log.Printf("%s: reconnected", s.opts.Name)
				s.connected(ctx)
			case err != nil && s.Ready():
				if ctx.Err() != nil {
					continue
				}
				log.Printf("%s: disconnected (%v), attempting to reconnect", s.opts.Name, err)
				s.setState(StateConnecting)
			}
		}
	}
}

func (s *Supervisor) connect(ctx context.Context) error {
	s.setState(StateConnecting)

	for attempt := 1; ; attempt++ {
		if s.opts.MaxAttempts > 0 {
			log.Printf("%s: connecting (attempt %d/%d)", s.opts.Name, attempt, s.opts.MaxAttempts)
		} else {
			log.Printf("%s: connecting (attempt %d)", s.opts.Name, attempt)
		}

		err := s.ping(ctx)
		if err == nil {
			log.Printf("%s: connected", s.opts.Name)
			s.connected(ctx)
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		log.Printf("%s: connection attempt %d failed: %v", s.opts.Name, attempt, err)
		if s.opts.MaxAttempts > 0 && attempt >= s.opts.MaxAttempts {
			return fmt.Errorf("%s: connection failed after %d attempts: %w", s.opts.Name, attempt, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.opts.RetryDelay):
		}
	}
}

func (s *Supervisor) connected(ctx context.Context) {
	if s.opts.OnConnect != nil {
		if err := s.opts.OnConnect(ctx); err != nil {
			log.Printf("%s: post-connect setup failed: %v", s.opts.Name, err)
		}
	}
	s.setState(StateConnected)
}

func (s *Supervisor) ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.opts.PingTimeout)
	defer cancel()
	return s.pinger.Ping(pingCtx)
}

var _ Readiness = (*Supervisor)(nil)
