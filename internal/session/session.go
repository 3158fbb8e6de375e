// Package session owns one live chat connection: it runs the receive
// loop, answers the server's alias request, classifies inbound
// messages and sends chat lines.
//
// A session moves Handshaking → Active → Closed and never back.  It
// becomes Closed when the peer disconnects, a read or decode fails, or
// Close is called.
package session

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"pcrchat/internal/errors"
	"pcrchat/internal/metrics"
	"pcrchat/util"
)

// State is the lifecycle position of a Session.
type State int

const (
	Handshaking State = iota
	Active
	Closed
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "handshaking"
	case Active:
		return "active"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// eventBuffer is how many classified events may queue before the
// receive loop waits for the consumer.
const eventBuffer = 64

// Options configures a Session.  Both fields may be nil.
type Options struct {
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// Session wraps one TCP connection and its receive loop.
type Session struct {
	ID string

	alias string
	conn  net.Conn
	addr  string

	active    atomic.Bool
	handshook atomic.Bool

	writeMu sync.Mutex

	mu     sync.Mutex
	reason error // set once when the peer side ends the session

	events    chan Event
	closed    chan struct{} // closed by Close; unblocks a pending emit
	closeOnce sync.Once
	loopDone  chan struct{}

	logger  *util.Logger
	metrics *metrics.Collector
}

// Start takes ownership of conn and starts the receive loop.  alias is
// fixed for the lifetime of the session.
func Start(conn net.Conn, alias string, opts Options) *Session {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = util.NewLogger(0)
	}

	s := &Session{
		ID:       id,
		alias:    alias,
		conn:     conn,
		addr:     conn.RemoteAddr().String(),
		events:   make(chan Event, eventBuffer),
		closed:   make(chan struct{}),
		loopDone: make(chan struct{}),
		logger:   logger.Named("session").Named(id[:8]),
		metrics:  opts.Metrics,
	}
	s.active.Store(true)
	s.metrics.SessionOpened()

	go s.receive()
	s.logger.Verbose("receive loop started for %s as %q", s.addr, alias)
	return s
}

// Events streams classified inbound messages.  The channel is closed
// when the receive loop stops; a peer-side end is announced first with
// a Disconnected event.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed once the receive loop has exited.
func (s *Session) Done() <-chan struct{} { return s.loopDone }

// State reports the lifecycle position.
func (s *Session) State() State {
	switch {
	case !s.active.Load():
		return Closed
	case !s.handshook.Load():
		return Handshaking
	default:
		return Active
	}
}

// Err returns why the peer side ended the session, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Send writes "{alias}: {text}\n".  A write failure is returned as
// ErrSendFailed and leaves the session state to the receive loop.
func (s *Session) Send(text string) error {
	if !s.active.Load() {
		if reason := s.Err(); reason != nil {
			return fmt.Errorf("%w: %w", errors.ErrSendFailed, reason)
		}
		return errors.ErrSessionClosed
	}

	if err := s.write(fmt.Sprintf("%s: %s\n", s.alias, text)); err != nil {
		if errors.IsBrokenPipe(err) {
			s.logger.Error("disconnected from the server... (%v)", err)
		} else {
			s.logger.Error("send to %s failed: %v", s.addr, err)
		}
		s.metrics.RecordError(err.Error())
		return fmt.Errorf("%w: %w", errors.ErrSendFailed, errors.Wrap("write", s.addr, err))
	}
	return nil
}

// Close announces the departure to the server, best effort, and
// releases the socket.  Only the first call has any effect.
func (s *Session) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })

	if !s.active.CompareAndSwap(true, false) {
		return nil
	}

	if err := s.write(s.alias + " has left the chat...\n"); err != nil {
		if errors.IsBrokenPipe(err) {
			s.logger.Info("server is offline... (%v)", err)
		} else {
			s.logger.Warn("leave notice to %s failed: %v", s.addr, err)
		}
	}
	err := s.conn.Close()
	s.metrics.SessionClosed()
	s.logger.Info("disconnected from the server by the user")
	return err
}

// Wait blocks until the receive loop has exited.
func (s *Session) Wait() { <-s.loopDone }

func (s *Session) write(msg string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	n, err := io.WriteString(s.conn, msg)
	s.metrics.BytesSent(int64(n))
	return err
}

// ── receive loop ─────────────────────────────────────────────────────

func (s *Session) receive() {
	defer close(s.loopDone)
	defer close(s.events)

	bufp := util.GetBuf()
	defer util.PutBuf(bufp)
	buf := *bufp

	var pending []byte
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.metrics.BytesReceived(int64(n))
			s.handshook.Store(true)

			data := append(pending[:len(pending):len(pending)], buf[:n]...)
			text, rest, ok := decodeChunk(data)
			if !ok {
				s.terminate(errors.Wrap("read", s.addr, errors.ErrMalformedRead))
				return
			}
			pending = rest
			if text != "" {
				s.dispatch(text)
			}
		}

		if err != nil {
			s.readFailed(err)
			return
		}
		if n == 0 {
			s.terminate(errors.ErrPeerDisconnected)
			return
		}
	}
}

func (s *Session) dispatch(text string) {
	kind := Classify(text)
	s.logger.Debug("received %s message (%d bytes)", kind, len(text))

	switch kind {
	case AliasRequested:
		if err := s.write(s.alias); err != nil {
			s.logger.Warn("alias reply failed: %v", err)
		}
		return
	case RosterUpdate:
		s.metrics.RosterUpdate()
	case ChatLine:
		s.metrics.ChatLine()
	}
	s.emit(Event{Kind: kind, Text: text})
}

func (s *Session) readFailed(err error) {
	if !s.active.Load() && util.IsClosed(err) {
		// Close was called; nothing to report.
		return
	}
	switch {
	case errors.Is(err, io.EOF):
		s.terminate(errors.ErrPeerDisconnected)
	case errors.IsAborted(err):
		s.terminate(fmt.Errorf("%w: %w", errors.ErrConnectionAborted, errors.Wrap("read", s.addr, err)))
	default:
		// Any other read failure also ends the session as aborted.
		s.logger.Warn("read from %s failed: %v", s.addr, err)
		s.terminate(fmt.Errorf("%w: %w", errors.ErrConnectionAborted, errors.Wrap("read", s.addr, err)))
	}
}

// terminate ends the session from the peer side and emits the terminal
// event.  It is a no-op when Close already ran.
func (s *Session) terminate(reason error) {
	s.mu.Lock()
	if !s.active.CompareAndSwap(true, false) {
		s.mu.Unlock()
		return
	}
	s.reason = reason
	s.mu.Unlock()

	s.conn.Close()
	s.metrics.SessionClosed()
	s.metrics.RecordError(reason.Error())

	if errors.IsAborted(reason) {
		s.logger.Error("connection has been aborted! (%v)", reason)
	} else {
		s.logger.Error("disconnected from the server! (%v)", reason)
	}
	s.emit(Event{Kind: Disconnected, Err: reason})
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-s.closed:
	}
}
