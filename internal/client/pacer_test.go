package client

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// instantClock fires immediately and records every requested wait.
type instantClock struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (c *instantClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (c *instantClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waits)
}

func TestTypewriter_OneChunkPerRune(t *testing.T) {
	clock := &instantClock{}
	tw := Typewriter{Delay: 70 * time.Millisecond, Clock: clock}

	var chunks []string
	if err := tw.Pace(context.Background(), "héllo", func(s string) { chunks = append(chunks, s) }); err != nil {
		t.Fatal(err)
	}
	want := []string{"h", "é", "l", "l", "o"}
	if strings.Join(chunks, "|") != strings.Join(want, "|") {
		t.Errorf("chunks = %q, want %q", chunks, want)
	}
	if clock.count() != len(want) {
		t.Errorf("waits = %d, want %d", clock.count(), len(want))
	}
	for _, d := range clock.waits {
		if d != 70*time.Millisecond {
			t.Errorf("wait = %v, want 70ms", d)
		}
	}
}

func TestTypewriter_ZeroDelayDoesNotWait(t *testing.T) {
	clock := &instantClock{}
	tw := Typewriter{Clock: clock}

	var b strings.Builder
	if err := tw.Pace(context.Background(), "abc", func(s string) { b.WriteString(s) }); err != nil {
		t.Fatal(err)
	}
	if b.String() != "abc" {
		t.Errorf("got %q", b.String())
	}
	if clock.count() != 0 {
		t.Errorf("waits = %d, want 0", clock.count())
	}
}

func TestTypewriter_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tw := Typewriter{Delay: time.Hour}

	var chunks []string
	done := make(chan error, 1)
	go func() {
		done <- tw.Pace(ctx, "abc", func(s string) { chunks = append(chunks, s) })
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Pace did not return after cancel")
	}
	if len(chunks) != 1 || chunks[0] != "a" {
		t.Errorf("chunks = %q, want [a]", chunks)
	}
}

func TestBulk(t *testing.T) {
	var chunks []string
	if err := (Bulk{}).Pace(context.Background(), "hello there", func(s string) { chunks = append(chunks, s) }); err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0] != "hello there" {
		t.Errorf("chunks = %q", chunks)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (Bulk{}).Pace(ctx, "x", func(string) { t.Error("emit after cancel") }); err == nil {
		t.Error("expected error for cancelled context")
	}
}
