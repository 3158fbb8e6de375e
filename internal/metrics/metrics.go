// Package metrics provides lightweight, lock-free counters for a
// pcrchat run: sessions, traffic and inbound message kinds.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics.
type Collector struct {
	sessionsActive atomic.Int64
	sessionsTotal  atomic.Int64
	connectFailed  atomic.Int64
	reconnects     atomic.Int64
	bytesIn        atomic.Int64
	bytesOut       atomic.Int64
	rosterUpdates  atomic.Int64
	chatLines      atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// ActiveSessions returns the number of live sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// ConnectFailed records a connect attempt that did not produce a session.
func (c *Collector) ConnectFailed() {
	if c == nil {
		return
	}
	c.connectFailed.Add(1)
}

// ConnectFailures returns the failed connect count.
func (c *Collector) ConnectFailures() int64 {
	if c == nil {
		return 0
	}
	return c.connectFailed.Load()
}

// Reconnect records a user-initiated endpoint change.
func (c *Collector) Reconnect() {
	if c == nil {
		return
	}
	c.reconnects.Add(1)
}

// Reconnects returns the endpoint change count.
func (c *Collector) Reconnects() int64 {
	if c == nil {
		return 0
	}
	return c.reconnects.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Message metrics ──────────────────────────────────────────────────

// RosterUpdate records an inbound roster/status message.
func (c *Collector) RosterUpdate() {
	if c == nil {
		return
	}
	c.rosterUpdates.Add(1)
}

// ChatLine records an inbound chat message.
func (c *Collector) ChatLine() {
	if c == nil {
		return
	}
	c.chatLines.Add(1)
}

// RosterUpdates returns the roster message count.
func (c *Collector) RosterUpdates() int64 {
	if c == nil {
		return 0
	}
	return c.rosterUpdates.Load()
}

// ChatLines returns the chat message count.
func (c *Collector) ChatLines() int64 {
	if c == nil {
		return 0
	}
	return c.chatLines.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsActive   int64  `json:"sessions_active"`
	SessionsTotal    int64  `json:"sessions_total"`
	ConnectFailures  int64  `json:"connect_failures"`
	Reconnects       int64  `json:"reconnects"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	RosterUpdates    int64  `json:"roster_updates"`
	ChatLines        int64  `json:"chat_lines"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive:  c.sessionsActive.Load(),
		SessionsTotal:   c.sessionsTotal.Load(),
		ConnectFailures: c.connectFailed.Load(),
		Reconnects:      c.reconnects.Load(),
		BytesIn:         c.bytesIn.Load(),
		BytesOut:        c.bytesOut.Load(),
		RosterUpdates:   c.rosterUpdates.Load(),
		ChatLines:       c.chatLines.Load(),
		ErrorsTotal:     c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
