package record

import "testing"

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"lower-case address", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", true},
		{"upper-case hex digits", "0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", true},
		{"mixed case", "0xA0b86991c6218B36c1d19D4a2e9Eb0cE3606eB48", true},
		{"missing 0x prefix", "a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", false},
		{"too short", "0xa0b86991", false},
		{"too long", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb4800", false},
		{"non-hex character", "0xg0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", false},
		{"empty", "", false},
		{"prefix only", "0x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidAddress(tt.addr); got != tt.want {
				t.Errorf("IsValidAddress(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestCanonicalAddress(t *testing.T) {
	upper := "0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48"
	lower := "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"

	if got := CanonicalAddress(upper); got != lower {
		t.Errorf("CanonicalAddress(%q) = %q, want %q", upper, got, lower)
	}
	if got := CanonicalAddress(lower); got != lower {
		t.Errorf("CanonicalAddress is not idempotent: got %q", got)
	}
	if CanonicalAddress(CanonicalAddress(upper)) != CanonicalAddress(upper) {
		t.Error("CanonicalAddress(CanonicalAddress(x)) != CanonicalAddress(x)")
	}
}
