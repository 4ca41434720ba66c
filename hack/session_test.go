package hack_test

import (
	"context"
	"testing"
	"time"

	"github.com/db47h/bitstep/hack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func example(t *testing.T, name string) *hack.Session {
	t.Helper()
	e, ok := hack.FindExample(name)
	require.True(t, ok, name)
	s, err := e.Session(hack.SessionConfig{})
	require.NoError(t, err)
	return s
}

func TestExamples(t *testing.T) {
	for _, e := range hack.Examples {
		t.Run(e.Name, func(t *testing.T) {
			_, err := hack.Parse(e.Source)
			require.NoError(t, err)
		})
	}
}

func TestSession_addition(t *testing.T) {
	s := example(t, "Addition")
	assert.Equal(t, hack.StopHalted, s.RunToHalt())
	st := s.State()
	assert.Equal(t, uint16(35), st.Read(2))
	assert.True(t, s.Halted())
	assert.Len(t, s.History(), 7)

	// stepping a halted program is a no-op
	_, ok := s.Step()
	assert.False(t, ok)
	assert.Len(t, s.History(), 7)
}

func TestSession_pointer(t *testing.T) {
	s := example(t, "Pointer dereference")
	assert.Equal(t, hack.StopHalted, s.RunToHalt())
	assert.Equal(t, uint16(42), s.State().Read(1))
}

func TestSession_countdown(t *testing.T) {
	s := example(t, "Countdown")
	require.Equal(t, hack.StopLooped, s.RunToHalt())
	assert.Equal(t, uint16(0), s.State().Read(0))

	// PC trace: one back edge 7 → 0 per iteration
	var backEdges int
	h := s.History()
	for i := 1; i < len(h); i++ {
		if h[i-1].PC == 7 && h[i].PC == 0 {
			backEdges++
		}
	}
	assert.Equal(t, 5, backEdges)

	// the loop exit: D;JEQ jumps to END when the counter reaches 0
	var exit int
	for i := 1; i < len(h); i++ {
		if h[i-1].PC == 3 && h[i].PC == 8 {
			exit++
		}
	}
	assert.Equal(t, 1, exit)
}

func TestSession_stepLimit(t *testing.T) {
	p := parse(t, "(L)\n@L\nM=M+1\n@L\n0;JMP\n")
	s := hack.NewSession(p, nil, hack.SessionConfig{StepLimit: 100})
	// RAM[0] changes on every turn: never the same state
	assert.Equal(t, hack.StopLimit, s.RunToHalt())
	assert.Len(t, s.History(), 101)
}

func TestSession_back(t *testing.T) {
	s := example(t, "Addition")
	assert.False(t, s.Back())

	st0 := s.State()
	st1, ok := s.Step()
	require.True(t, ok)
	st2, ok := s.Step()
	require.True(t, ok)
	assert.Equal(t, uint16(10), st2.D)

	require.True(t, s.Back())
	assert.Equal(t, st1, s.State())
	require.True(t, s.Back())
	assert.Equal(t, st0, s.State())

	s.Step()
	s.Step()
	s.Reset()
	assert.Equal(t, st0, s.State())
	assert.Len(t, s.History(), 1)
}

func TestSession_run(t *testing.T) {
	s := example(t, "Addition")
	var states []hack.State
	done := s.Run(context.Background(), time.Millisecond, func(st hack.State) {
		states = append(states, st)
	})
	select {
	case r := <-done:
		assert.Equal(t, hack.StopHalted, r)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not terminate")
	}
	assert.Len(t, states, 6)
	assert.Equal(t, uint16(35), s.State().Read(2))
}

func TestSession_runCancel(t *testing.T) {
	s := example(t, "Countdown")
	done := s.Run(context.Background(), time.Hour, nil)
	// a new run stops the previous one
	done2 := s.Run(context.Background(), time.Hour, nil)
	assert.Equal(t, hack.StopCanceled, <-done)

	ctx, cancel := context.WithCancel(context.Background())
	done3 := s.Run(ctx, time.Hour, nil)
	assert.Equal(t, hack.StopCanceled, <-done2)
	cancel()
	assert.Equal(t, hack.StopCanceled, <-done3)
	s.Stop()
	assert.Len(t, s.History(), 1)
}

func TestSession_runShortInterval(t *testing.T) {
	s := example(t, "Addition")
	for _, d := range []time.Duration{0, -time.Second} {
		s.Reset()
		select {
		case r := <-s.Run(context.Background(), d, nil):
			assert.Equal(t, hack.StopHalted, r)
		case <-time.After(5 * time.Second):
			t.Fatalf("interval %v: run did not terminate", d)
		}
		assert.Equal(t, uint16(35), s.State().Read(2))
	}
}

func TestSession_runStopFromCallback(t *testing.T) {
	td := []struct {
		name string
		call func(s *hack.Session)
		hist int
	}{
		{"Stop", (*hack.Session).Stop, 3},
		{"Reset", (*hack.Session).Reset, 1},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s := example(t, "Countdown")
			n := 0
			done := s.Run(context.Background(), time.Millisecond, func(hack.State) {
				if n++; n == 2 {
					d.call(s)
				}
			})
			select {
			case r := <-done:
				assert.Equal(t, hack.StopCanceled, r)
			case <-time.After(5 * time.Second):
				t.Fatal("run did not terminate")
			}
			assert.Equal(t, 2, n)
			assert.Len(t, s.History(), d.hist)
		})
	}

	s := example(t, "Addition")
	restarted := make(chan (<-chan hack.StopReason), 1)
	first := true
	done := s.Run(context.Background(), time.Millisecond, func(hack.State) {
		if first {
			first = false
			restarted <- s.Run(context.Background(), time.Millisecond, nil)
		}
	})
	assert.Equal(t, hack.StopCanceled, <-done)
	assert.Equal(t, hack.StopHalted, <-<-restarted)
	assert.Equal(t, uint16(35), s.State().Read(2))
}
