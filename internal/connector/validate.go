package connector

import (
	"net/netip"
	"strconv"
	"strings"
)

// ValidateIP reports whether text is a dotted-quad IPv4 address.
// IPv4-mapped IPv6 forms such as ::ffff:10.0.0.1 are rejected.
func ValidateIP(text string) bool {
	if strings.Count(text, ".") != 3 {
		return false
	}
	addr, err := netip.ParseAddr(text)
	return err == nil && addr.Is4()
}

// ValidatePort reports whether text is a decimal port number in
// [0, 65535].  Signs, spaces and other non-digits are rejected.
func ValidatePort(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(text)
	return err == nil && n <= 65535
}
