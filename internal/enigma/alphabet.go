// internal/enigma/alphabet.go
//
// The 26-letter index space shared by every stage of the machine.
// Letters map to 0..25 and all rotor arithmetic is mod 26.

package enigma

import (
	"errors"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// size is the number of contacts on a rotor face.
const size = len(alphabet)

// ErrInvalidLetter is returned for any key outside A–Z.
var ErrInvalidLetter = errors.New("enigma: letter must be A-Z")

// Index maps a letter (either case) to 0..25.
func Index(r rune) (int, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), nil
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, r)
}

// Letter is the inverse of Index for 0..25.
func Letter(i int) rune { return rune(alphabet[i]) }

// isLetter reports whether r is an ASCII letter of either case.
func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
}
