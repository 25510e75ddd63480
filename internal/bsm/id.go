package bsm

import "strings"

// ValidID reports whether id is exactly 8 hex digits once separator
// characters ('-', ':', space, tab) are stripped.
func ValidID(id string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '-', ':', ' ', '\t':
			return -1
		}
		return r
	}, id)

	if len(stripped) != 8 {
		return false
	}
	for _, r := range stripped {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
