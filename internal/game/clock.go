package game

import "time"

// Clock abstracts wall-clock reads so buff cooldowns can be tested with
// deterministic timestamps. Cooldowns elapse in real time even when the
// tick driver is stopped, so this is the only clock the reducer may use.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewClock returns the system wall clock.
func NewClock() Clock {
	return realClock{}
}
