package session

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"ALIAS", AliasRequested},
		{"42 online...", RosterUpdate},
		{"3 users connected", RosterUpdate},
		{"alice is online...", RosterUpdate},
		{"Bob: hi", ChatLine},
		{"Bob: see you at 5 online...", RosterUpdate}, // inherited heuristic
		{"7 dwarves: hi", RosterUpdate},                // inherited heuristic
		{"ALIAS ", ChatLine},
		{"alias", ChatLine},
		{"online...", ChatLine},
		{"", ChatLine},
		{"٣ online", RosterUpdate}, // Arabic-Indic digit
	}
	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	for k, want := range map[Kind]string{
		ChatLine: "chat", RosterUpdate: "roster", AliasRequested: "alias-request",
		Disconnected: "disconnected", Kind(42): "unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestDecodeChunk(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		wantText string
		wantRest []byte
		wantOK   bool
	}{
		{"ascii", []byte("Bob: hi"), "Bob: hi", nil, true},
		{"complete multibyte", []byte("Zoë: ça va"), "Zoë: ça va", nil, true},
		{"split two-byte rune", []byte{'a', 0xC3}, "a", []byte{0xC3}, true},
		{"split three-byte rune", []byte{'a', 0xE2, 0x82}, "a", []byte{0xE2, 0x82}, true},
		{"only a partial rune", []byte{0xF0, 0x9F, 0x98}, "", []byte{0xF0, 0x9F, 0x98}, true},
		{"invalid byte", []byte{0xFF, 'a'}, "", nil, false},
		{"invalid continuation", []byte{'a', 0x80, 'b'}, "", nil, false},
		{"empty", []byte{}, "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, rest, ok := decodeChunk(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if string(rest) != string(tt.wantRest) {
				t.Errorf("rest = %x, want %x", rest, tt.wantRest)
			}
		})
	}
}
