// internal/enigma/signal.go
//
// Signal path: one pass of current from key to lamp.
//
// The signal crosses the rotors fast → medium → slow using the forward
// tables, bounces off the reflector, and returns slow → medium → fast using
// the backward tables. Each rotor stage shifts the incoming contact by the
// rotor's offset, looks up the wired contact, and shifts back. Because the
// reflector has no fixed points and the return trip mirrors the outbound one,
// the whole path is an involution without fixed points for any fixed offsets.

package enigma

// Encipher routes input (0..25) through the seven stages for the given rotor
// offsets and returns the output contact. It has no state of its own.
// Offsets must be in [0, 26).
func (w *Wiring) Encipher(input int, offsets [NumRotors]int) int {
	signal := input
	for slot := Fast; slot >= Slow; slot-- {
		signal = pass(&w.forward[slot], signal, offsets[slot])
	}
	signal = w.reflector[signal]
	for slot := Slow; slot <= Fast; slot++ {
		signal = pass(&w.backward[slot], signal, offsets[slot])
	}
	return signal
}

// pass applies one rotor table at the given offset.
func pass(t *table, signal, offset int) int {
	shifted := (signal + offset) % size
	return (t[shifted] - offset + size) % size
}
