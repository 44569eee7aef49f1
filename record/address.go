package record

import "strings"

// addressHexDigits is the number of hex digits in a serialized 20-byte address.
const addressHexDigits = 40

// CanonicalAddress returns the canonical form of an address string used for
// all cross-record comparisons: the lower-cased text. Canonicalization is
// idempotent and does not require the input to be a valid address.
func CanonicalAddress(addr string) string {
	return strings.ToLower(addr)
}

// IsValidAddress reports whether addr is a well-formed chain address:
// a "0x" prefix followed by exactly 40 case-insensitive hex digits.
func IsValidAddress(addr string) bool {
	if !strings.HasPrefix(addr, "0x") {
		return false
	}
	hex := addr[2:]
	if len(hex) != addressHexDigits {
		return false
	}
	for _, c := range hex {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
