package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wire literals of the chat server.
const (
	AliasRequest = "ALIAS"
	OnlineSuffix = " online..."
)

// Kind classifies an inbound message.
type Kind int

const (
	ChatLine Kind = iota
	RosterUpdate
	AliasRequested
	// Disconnected is the terminal event; Event.Err holds the reason.
	Disconnected
)

func (k Kind) String() string {
	switch k {
	case ChatLine:
		return "chat"
	case RosterUpdate:
		return "roster"
	case AliasRequested:
		return "alias-request"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event is what the receive loop hands to the presentation side.
type Event struct {
	Kind Kind
	Text string
	Err  error
}

// Classify applies the server's message heuristic: the exact text
// "ALIAS" is an alias request; a message whose first character is a
// digit, or that ends in " online...", is a roster/status update;
// anything else is chat.  A chat line that happens to match the roster
// rule is misclassified, as the server expects.
func Classify(msg string) Kind {
	if msg == AliasRequest {
		return AliasRequested
	}
	if r, size := utf8.DecodeRuneInString(msg); size > 0 && unicode.IsDigit(r) {
		return RosterUpdate
	}
	if strings.HasSuffix(msg, OnlineSuffix) {
		return RosterUpdate
	}
	return ChatLine
}
