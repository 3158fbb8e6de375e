package session

import "unicode/utf8"

// decodeChunk converts data to text, holding back a trailing rune that
// was split across reads.  ok is false when data is not valid UTF-8.
func decodeChunk(data []byte) (text string, rest []byte, ok bool) {
	cut := len(data)
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		if !utf8.RuneStart(data[len(data)-i]) {
			continue
		}
		if !utf8.FullRune(data[len(data)-i:]) {
			cut = len(data) - i
		}
		break
	}
	if !utf8.Valid(data[:cut]) {
		return "", nil, false
	}
	if cut < len(data) {
		rest = append([]byte(nil), data[cut:]...)
	}
	return string(data[:cut]), rest, true
}
