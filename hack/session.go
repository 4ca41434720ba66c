// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// DefaultStepLimit is the default maximum number of steps of RunToHalt.
//
const DefaultStepLimit = 10000

// SessionConfig configures a Session.
//
type SessionConfig struct {
	// StepLimit bounds RunToHalt. Zero means DefaultStepLimit.
	StepLimit int
}

// StopReason tells why a run stopped.
//
type StopReason int

// Stop reasons.
//
const (
	StopHalted   StopReason = iota // PC past the last instruction
	StopLooped                     // the machine re-entered a previous state
	StopLimit                      // step limit reached
	StopCanceled                   // context canceled or Stop called
)

func (r StopReason) String() string {
	switch r {
	case StopHalted:
		return "halted"
	case StopLooped:
		return "looped"
	case StopLimit:
		return "step limit reached"
	case StopCanceled:
		return "canceled"
	}
	return "unknown"
}

// Session executes a program one step at a time and keeps the history of all
// states, which allows stepping back.
//
// All methods are safe for concurrent use. At most one timed run (see Run)
// is active at any time.
//
type Session struct {
	prog *Program
	cfg  SessionConfig

	mu      sync.Mutex
	history []State // history[0] is the initial state

	runMu sync.Mutex
	cur   *timedRun
}

// NewSession returns a session executing p from a state with the given
// initial RAM contents.
//
func NewSession(p *Program, ram map[uint16]uint16, cfg SessionConfig) *Session {
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = DefaultStepLimit
	}
	return &Session{
		prog:    p,
		cfg:     cfg,
		history: []State{NewState(ram)},
	}
}

// Program returns the program executed by s.
//
func (s *Session) Program() *Program { return s.prog }

// State returns a copy of the current state.
//
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[len(s.history)-1].Clone()
}

// History returns a copy of all states, the initial state first.
//
func (s *Session) History() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := slices.Clone(s.history)
	for i := range h {
		h[i] = h[i].Clone()
	}
	return h
}

// Halted returns true if the program has terminated.
//
func (s *Session) Halted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.halted()
}

func (s *Session) halted() bool {
	return IsHalted(s.history[len(s.history)-1], s.prog.Len())
}

// Step executes the next instruction. It returns the new state and true, or
// the current state and false if the program is halted.
//
func (s *Session) Step() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

func (s *Session) step() (State, bool) {
	cur := s.history[len(s.history)-1]
	if s.halted() {
		return cur.Clone(), false
	}
	next := Step(cur, s.prog.Instructions[cur.PC])
	s.history = append(s.history, next)
	return next.Clone(), true
}

// Back reverts the last step. It returns false if there is nothing to revert.
//
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) < 2 {
		return false
	}
	s.history = s.history[:len(s.history)-1]
	return true
}

// Reset stops any timed run and reverts to the initial state.
//
func (s *Session) Reset() {
	s.Stop()
	s.mu.Lock()
	s.history = s.history[:1]
	s.mu.Unlock()
}

// RunToHalt steps until the program halts, loops or the step limit is
// reached.
//
// A loop is detected when the machine enters a state it has already been in
// during this call: being deterministic, it would then cycle forever. This
// catches the conventional (END) @END 0;JMP end of program.
//
func (s *Session) RunToHalt() StopReason {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{s.history[len(s.history)-1].key(): true}
	for i := 0; i < s.cfg.StepLimit; i++ {
		st, ok := s.step()
		if !ok {
			return StopHalted
		}
		k := st.key()
		if seen[k] {
			return StopLooped
		}
		seen[k] = true
	}
	if s.halted() {
		return StopHalted
	}
	return StopLimit
}

// MinRunInterval is the shortest step interval of Run.
//
const MinRunInterval = time.Millisecond

// timedRun is a timed run in progress.
type timedRun struct {
	cancel context.CancelFunc
	done   chan struct{}
	inStep atomic.Bool // set while onStep executes
}

// Run starts stepping the program in the background, one step every
// interval, until it halts, ctx is canceled or Stop is called. A run already
// in progress is stopped first. Intervals shorter than MinRunInterval are
// raised to MinRunInterval. onStep, if not nil, is called with every new
// state and the stop reason is sent on the returned channel before it is
// closed.
//
// onStep may call Stop, Reset or Run. Stopping a run from within its own
// onStep does not wait for the run to exit, but no further step is taken.
//
// Unlike RunToHalt, Run does not detect loops.
//
func (s *Session) Run(ctx context.Context, interval time.Duration, onStep func(State)) <-chan StopReason {
	if interval < MinRunInterval {
		log.WithFields(logrus.Fields{"interval": interval, "min": MinRunInterval}).Debug("run interval too short")
		interval = MinRunInterval
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.stop()

	ctx, cancel := context.WithCancel(ctx)
	r := &timedRun{cancel: cancel, done: make(chan struct{})}
	res := make(chan StopReason, 1)
	s.cur = r
	log.WithFields(logrus.Fields{"interval": interval}).Debug("run started")
	go s.run(ctx, r, interval, onStep, res)
	return res
}

func (s *Session) run(ctx context.Context, r *timedRun, interval time.Duration, onStep func(State), res chan<- StopReason) {
	defer close(r.done)
	defer close(res)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	stop := func(reason StopReason) {
		log.WithFields(logrus.Fields{"reason": reason}).Debug("run stopped")
		res <- reason
	}
	for {
		select {
		case <-ctx.Done():
			stop(StopCanceled)
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				stop(StopCanceled)
				return
			}
			st, ok := s.Step()
			if !ok {
				stop(StopHalted)
				return
			}
			if onStep == nil {
				continue
			}
			// a stop() that does not see inStep set has canceled ctx before
			// the check below.
			r.inStep.Store(true)
			if ctx.Err() == nil {
				onStep(st)
			}
			r.inStep.Store(false)
		}
	}
}

// Stop stops the current timed run, if any, and waits for it to exit.
//
func (s *Session) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.stop()
}

func (s *Session) stop() {
	r := s.cur
	if r == nil {
		return
	}
	s.cur = nil
	r.cancel()
	if !r.inStep.Load() {
		<-r.done
	}
}
