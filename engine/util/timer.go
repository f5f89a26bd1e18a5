package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimerState accumulates the durations of one named section, in milliseconds.
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

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.3fms, avg: %.3fms, min: %.3fms, max: %.3fms", t.name, t.lastDuration, t.averageDuration(), t.minDuration, t.maxDuration)
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) record(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	if durationInMS < t.minDuration {
		t.minDuration = durationInMS
	}
	if durationInMS > t.maxDuration {
		t.maxDuration = durationInMS
	}
}

func (t *TimerState) reset() {
	t.lastDuration = 0
	t.totalDuration = 0
	t.executionCount = 0
	t.minDuration = math.MaxFloat64
	t.maxDuration = 0
}

// Timer measures named sections of a frame. Sections are reported in the order they were
// first started.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
	now        func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
		now:    time.Now,
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) Reset() {
	for _, state := range t.states {
		state.reset()
	}
}

func (t *Timer) String() string {
	lines := make([]string, 0, len(t.timerNames))
	for _, name := range t.timerNames {
		lines = append(lines, t.states[name].String())
	}
	return strings.Join(lines, "; ")
}

// Start begins measuring the named section. Calling the returned function ends it and yields
// the duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{name: name}
		state.reset()
		t.states[name] = state
	}
	start := t.now()
	return func() float64 {
		durationInMS := float64(t.now().Sub(start).Microseconds()) / 1000.0
		state.record(durationInMS)
		return durationInMS
	}
}
