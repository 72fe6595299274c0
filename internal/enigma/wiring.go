// internal/enigma/wiring.go
//
// Wiring table: the immutable substitution tables of the three rotors and
// the reflector.
//
// Each rotor has a forward table (signal flowing right to left, as given in
// the Config) and a backward table, which is the inverse permutation used on
// the return trip after the reflector. The reflector is used as-is: it must be
// an involution with no fixed points.
//
// Validation happens once in NewWiring. Nothing here is re-checked per keystroke.

package enigma

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration wraps every wiring validation failure.
	ErrConfiguration = errors.New("enigma: invalid configuration")

	ErrNotPermutation = fmt.Errorf("%w: wiring is not a permutation of A-Z", ErrConfiguration)
	ErrNotInvolution  = fmt.Errorf("%w: reflector is not self-inverse", ErrConfiguration)
	ErrFixedPoint     = fmt.Errorf("%w: reflector maps a letter to itself", ErrConfiguration)
)

// table maps an input contact (0..25) to an output contact.
type table [size]int

// Wiring holds the validated substitution tables for one machine.
// It is safe to share between machines; it is never mutated after NewWiring.
type Wiring struct {
	forward   [NumRotors]table
	backward  [NumRotors]table
	reflector table
}

// NewWiring validates cfg and derives the backward rotor tables.
func NewWiring(cfg Config) (*Wiring, error) {
	w := &Wiring{}
	for slot, perm := range cfg.Rotors {
		fwd, err := parseTable(perm)
		if err != nil {
			return nil, fmt.Errorf("%s rotor: %w", SlotName(slot), err)
		}
		inv, err := Invert(perm)
		if err != nil {
			return nil, fmt.Errorf("%s rotor: %w", SlotName(slot), err)
		}
		bwd, _ := parseTable(inv)
		w.forward[slot] = fwd
		w.backward[slot] = bwd
	}

	refl, err := parseTable(cfg.Reflector)
	if err != nil {
		return nil, fmt.Errorf("reflector: %w", err)
	}
	for i, j := range refl {
		if i == j {
			return nil, fmt.Errorf("%w: %c", ErrFixedPoint, Letter(i))
		}
		if refl[j] != i {
			return nil, fmt.Errorf("%w: %c->%c->%c", ErrNotInvolution, Letter(i), Letter(j), Letter(refl[j]))
		}
	}
	w.reflector = refl
	return w, nil
}

// Invert returns the inverse of a 26-letter permutation: if perm maps
// position i to letter L, the result maps position L back to letter i.
// The result is built by locating each alphabet letter in perm, in order.
func Invert(perm string) (string, error) {
	if _, err := parseTable(perm); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(size)
	for _, r := range alphabet {
		b.WriteRune(Letter(strings.IndexRune(perm, r)))
	}
	return b.String(), nil
}

// Forward returns the forward permutation of a rotor slot as letters.
func (w *Wiring) Forward(slot int) string { return w.forward[slot].String() }

// Backward returns the inverse permutation of a rotor slot as letters.
func (w *Wiring) Backward(slot int) string { return w.backward[slot].String() }

// Reflector returns the reflector permutation as letters.
func (w *Wiring) Reflector() string { return w.reflector.String() }

// parseTable checks that perm is a bijection on A–Z and converts it to indexes.
func parseTable(perm string) (table, error) {
	var t table
	if len(perm) != size {
		return t, fmt.Errorf("%w: want %d letters, got %d", ErrNotPermutation, size, len(perm))
	}
	var seen [size]bool
	for i, r := range perm {
		if r < 'A' || r > 'Z' {
			return t, fmt.Errorf("%w: bad letter %q at %d", ErrNotPermutation, r, i)
		}
		j := int(r - 'A')
		if seen[j] {
			return t, fmt.Errorf("%w: duplicate letter %c", ErrNotPermutation, r)
		}
		seen[j] = true
		t[i] = j
	}
	return t, nil
}

func (t table) String() string {
	var b [size]byte
	for i, j := range t {
		b[i] = alphabet[j]
	}
	return string(b[:])
}
