package connector

import (
	"net"

	"pcrchat/config"
)

// State is the result class of one connect attempt.
type State int

const (
	// Connected means the socket is open and owned by the outcome.
	Connected State = iota
	// Refused means the host answered but nothing listens on the port.
	Refused
	// Unreachable means there is no network path, or the connect timed out.
	Unreachable
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Refused:
		return "refused"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Outcome is produced once per Connect call.  Conn is non-nil only when
// State is Connected; Err is non-nil otherwise.
type Outcome struct {
	State    State
	Conn     net.Conn
	Endpoint config.Endpoint
	Err      error
}

// OK reports whether the outcome carries an open connection.
func (o Outcome) OK() bool { return o.State == Connected }
