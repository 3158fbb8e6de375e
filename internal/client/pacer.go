package client

import (
	"context"
	"time"
)

// Clock abstracts the timer used for pacing so tests can run without
// waiting on the wall clock.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// Pacer turns one chat line into a sequence of append chunks.
type Pacer interface {
	// Pace calls emit for each chunk of text in order.  It returns
	// ctx.Err() if the context ends before every chunk was emitted.
	Pace(ctx context.Context, text string, emit func(chunk string)) error
}

// Typewriter emits one character at a time with Delay between them.
type Typewriter struct {
	Delay time.Duration
	Clock Clock
}

// Pace implements Pacer.
func (t Typewriter) Pace(ctx context.Context, text string, emit func(string)) error {
	clock := t.Clock
	if clock == nil {
		clock = RealClock
	}
	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(string(r))
		if t.Delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(t.Delay):
		}
	}
	return nil
}

// Bulk emits the whole line as a single chunk.
type Bulk struct{}

// Pace implements Pacer.
func (Bulk) Pace(ctx context.Context, text string, emit func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	emit(text)
	return nil
}
