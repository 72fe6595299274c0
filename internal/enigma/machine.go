// internal/enigma/machine.go
//
// Machine facade: the only entry point a UI adapter needs.
//
// A keystroke always runs in the same order:
//   1. validate the key (a bad key leaves the rotors untouched),
//   2. step the rotor bank,
//   3. snapshot the new offsets,
//   4. run the signal path and light the resulting lamp.
//
// Releasing the key only turns the lamp off; it never re-enciphers.
// A Machine is not safe for concurrent use; callers serialise access.

package enigma

// Machine is a single three-rotor Enigma.
type Machine struct {
	wiring *Wiring
	bank   Bank
	lamp   int // lit lamp index, or -1 when dark
}

// NewMachine validates cfg and returns a machine with all rotors at A.
func NewMachine(cfg Config) (*Machine, error) {
	w, err := NewWiring(cfg)
	if err != nil {
		return nil, err
	}
	return NewMachineWithWiring(w), nil
}

// NewMachineWithWiring builds a machine on an already validated wiring table.
func NewMachineWithWiring(w *Wiring) *Machine {
	return &Machine{wiring: w, lamp: -1}
}

// PressKey steps the rotors, enciphers letter and lights the output lamp.
func (m *Machine) PressKey(letter rune) (rune, error) {
	in, err := Index(letter)
	if err != nil {
		return 0, err
	}
	m.bank.Step()
	out := m.wiring.Encipher(in, m.bank.Offsets())
	m.lamp = out
	return Letter(out), nil
}

// ReleaseKey turns the lamp off and reports which lamp was lit.
func (m *Machine) ReleaseKey() (rune, bool) {
	lamp, ok := m.Lamp()
	m.lamp = -1
	return lamp, ok
}

// Lamp returns the currently lit lamp, if any.
func (m *Machine) Lamp() (rune, bool) {
	if m.lamp < 0 {
		return 0, false
	}
	return Letter(m.lamp), true
}

// AdvanceRotor turns one rotor by hand, with the usual carry into slower rotors.
func (m *Machine) AdvanceRotor(slot int) error {
	return m.bank.Advance(slot)
}

// Encipher types text one key at a time, releasing after every letter.
// Letters come back upper-cased; any other rune is copied through without
// touching the rotors.
func (m *Machine) Encipher(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if !isLetter(r) {
			out = append(out, r)
			continue
		}
		lamp, _ := m.PressKey(r)
		m.ReleaseKey()
		out = append(out, lamp)
	}
	return string(out)
}

// CurrentDisplay returns the rotor window letters, slow to fast.
func (m *Machine) CurrentDisplay() string { return m.bank.Display() }

// Offsets returns the rotor offsets, slow to fast.
func (m *Machine) Offsets() [NumRotors]int { return m.bank.Offsets() }

// Wiring exposes the machine's wiring table.
func (m *Machine) Wiring() *Wiring { return m.wiring }
