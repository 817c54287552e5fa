package util

import (
	"fmt"
	"math"
	"sync"
	"time"
)

type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func (t *TimerState) averageDuration() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.3fms, avg: %.3fms, min: %.3fms, max: %.3fms (%d runs)", t.name, t.lastDuration, t.averageDuration(), t.minDuration, t.maxDuration, t.executionCount)
}

// Timer collects durations per name. Safe for concurrent use.
type Timer struct {
	mu         sync.Mutex
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

// GetState returns a copy of the named state.
func (t *Timer) GetState(name string) (TimerState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		return TimerState{}, false
	}
	return *state, true
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, state := range t.states {
		state.lastDuration = 0
		state.totalDuration = 0
		state.executionCount = 0
		state.minDuration = math.MaxFloat64
		state.maxDuration = 0
	}
}

func (t *Timer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var str string
	for _, name := range t.timerNames {
		str += t.states[name].String() + "\n"
	}
	return str
}

// Start begins a measurement; calling the returned func ends it and returns
// the duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		t.record(name, durationInMS)
		return durationInMS
	}
}

func (t *Timer) record(name string, durationInMS float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxFloat64,
		}
		t.states[name] = state
	}
	state.lastDuration = durationInMS
	state.totalDuration += durationInMS
	state.executionCount++
	if durationInMS < state.minDuration {
		state.minDuration = durationInMS
	}
	if durationInMS > state.maxDuration {
		state.maxDuration = durationInMS
	}
}
