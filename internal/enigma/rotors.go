// internal/enigma/rotors.go
//
// Rotor bank: the only mutable state of the machine.
//
// The bank is a fixed array of three offsets indexed by slot. Stepping works
// like a three-digit base-26 odometer whose least significant digit is the
// fast rotor: a rotor that wraps from Z back to A carries into the next
// slower rotor. The slow rotor never carries.

package enigma

import (
	"errors"
	"fmt"
)

// Rotor slots, left to right.
const (
	Slow = iota
	Medium
	Fast

	NumRotors
)

// ErrInvalidSlot is returned for a slot outside Slow..Fast.
var ErrInvalidSlot = errors.New("enigma: rotor slot out of range")

// SlotName returns a human label for a rotor slot.
func SlotName(slot int) string {
	switch slot {
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	}
	return fmt.Sprintf("slot %d", slot)
}

// Bank holds one offset (0..25) per rotor slot.
// The zero value is the AAA starting position.
type Bank struct {
	offsets [NumRotors]int
}

// Step advances the bank by one keystroke.
func (b *Bank) Step() {
	b.advance(Fast)
}

// Advance turns the rotor in slot by one position, carrying into slower
// rotors on wraparound.
func (b *Bank) Advance(slot int) error {
	if slot < Slow || slot >= NumRotors {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	b.advance(slot)
	return nil
}

func (b *Bank) advance(slot int) {
	for s := slot; s >= Slow; s-- {
		b.offsets[s] = (b.offsets[s] + 1) % size
		if b.offsets[s] != 0 {
			return
		}
	}
}

// Offsets returns a snapshot of the rotor offsets in slot order.
func (b *Bank) Offsets() [NumRotors]int {
	return b.offsets
}

// Display renders the offsets as the letters shown in the rotor windows.
func (b *Bank) Display() string {
	var buf [NumRotors]byte
	for i, off := range b.offsets {
		buf[i] = alphabet[off]
	}
	return string(buf[:])
}
