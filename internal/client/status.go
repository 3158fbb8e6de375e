package client

import "pcrchat/internal/errors"

// Status lines shown by the presentation adapters.
const (
	StatusConnected    = "connected to the server..."
	StatusNoInternet   = "could not connect to the server...\nPlease verify that you are connected to the internet!"
	StatusCheckServer  = "could not connect to the server...\nPlease verify that the server is running and that the ip/port are correct!"
	StatusDisconnected = "disconnected from the server..."
	StatusAborted      = "connection has been aborted!"
	StatusMalformed    = "received malformed data from the server!"
	StatusNotConnected = "not connected to a server"
)

// StatusText maps a connect, send or disconnect error to the line the
// user sees.  Unknown errors get their own text.
func StatusText(err error) string {
	switch {
	case err == nil:
		return StatusConnected
	case errors.Is(err, errors.ErrConnectionRefused):
		return StatusCheckServer
	case errors.Is(err, errors.ErrConnectTimeout), errors.Is(err, errors.ErrNetworkUnreachable):
		return StatusNoInternet
	case errors.Is(err, errors.ErrMalformedRead):
		return StatusMalformed
	case errors.Is(err, errors.ErrConnectionAborted):
		return StatusAborted
	case errors.Is(err, errors.ErrPeerDisconnected), errors.Is(err, errors.ErrSendFailed):
		return StatusDisconnected
	case errors.Is(err, errors.ErrNotConnected):
		return StatusNotConnected
	default:
		return err.Error()
	}
}
