package client

import (
	"fmt"
	"testing"

	"pcrchat/internal/errors"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, StatusConnected},
		{"refused", fmt.Errorf("%w: dial", errors.ErrConnectionRefused), StatusCheckServer},
		{"timeout", fmt.Errorf("%w: dial", errors.ErrConnectTimeout), StatusNoInternet},
		{"unreachable", errors.ErrNetworkUnreachable, StatusNoInternet},
		{"peer", errors.ErrPeerDisconnected, StatusDisconnected},
		{"send after peer close", fmt.Errorf("%w: %w", errors.ErrSendFailed, errors.ErrPeerDisconnected), StatusDisconnected},
		{"aborted", fmt.Errorf("%w: reset", errors.ErrConnectionAborted), StatusAborted},
		{"malformed", errors.Wrap("read", "x", errors.ErrMalformedRead), StatusMalformed},
		{"not connected", errors.ErrNotConnected, StatusNotConnected},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(tt.err); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}
