package transport

import (
	"context"
	"net"
	"time"
)

// TCPDialer establishes plain TCP connections.  Timeout bounds the
// connect phase only: the returned connection has no deadline, so
// reads on it block until data arrives or the peer goes away.
type TCPDialer struct {
	Timeout time.Duration
}

// Dial connects to address over TCP.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}

	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }
