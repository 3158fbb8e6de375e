package client

import "pcrchat/config"

// Listener is the callback surface of the presentation layer.  Calls
// never overlap: the connect callbacks run on the goroutine that asked
// for the connection, the others on the session's event pump, which
// only starts after OnConnected returns.
type Listener interface {
	OnConnected(ep config.Endpoint)
	OnConnectFailed(reason error, ep config.Endpoint)
	OnRosterUpdate(text string)
	OnChatAppend(chunk string)
	OnDisconnected(reason error)
}
