// internal/session/engine.go
//
// Session operations used by the HTTP adapter.
// Responsibilities:
//   - Create sessions around a fresh machine (rotors at AAA).
//   - Forward key presses, key releases, rotor clicks and typed text to the machine.
//   - Count keystrokes and produce snapshots for responses.
//
// Every method locks the session for its whole duration.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/enigma/internal/enigma"
)

// New constructs a session with a new machine on the shared wiring table.
func New(w *enigma.Wiring, now time.Time) *Session {
	return &Session{
		ID:        randomID(),
		StartedAt: now.UTC(),
		machine:   enigma.NewMachineWithWiring(w),
	}
}

// OwnedBy reports whether the client holding userID or anonID switched the
// machine on. Empty identifiers never match. A guest who signs in keeps their
// machines through the guest cookie.
func (s *Session) OwnedBy(userID, anonID string) bool {
	return (s.UserID != "" && s.UserID == userID) ||
		(s.AnonID != "" && s.AnonID == anonID)
}

// Press sends one key to the machine and returns the lit lamp.
// key must be a single letter; anything else leaves the rotors untouched.
func (s *Session) Press(key string) (string, View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) {
		return "", s.view(), fmt.Errorf("%w: %q", enigma.ErrInvalidLetter, key)
	}
	lamp, err := s.machine.PressKey(r)
	if err != nil {
		return "", s.view(), err
	}
	s.keystrokes++
	return string(lamp), s.view(), nil
}

// Release lets go of the pressed key. It has no cipher effect.
func (s *Session) Release() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.ReleaseKey()
	return s.view()
}

// Advance turns one rotor by hand.
func (s *Session) Advance(slot int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.machine.AdvanceRotor(slot); err != nil {
		return s.view(), err
	}
	return s.view(), nil
}

// Type enciphers a whole message and reports how many keys were pressed.
func (s *Session) Type(text string) (string, int, View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.keystrokes
	for _, r := range text {
		if _, err := enigma.Index(r); err == nil {
			s.keystrokes++
		}
	}
	out := s.machine.Encipher(text)
	return out, s.keystrokes - before, s.view()
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// view assumes s.mu is held.
func (s *Session) view() View {
	v := View{
		ID:         s.ID,
		Display:    s.machine.CurrentDisplay(),
		Offsets:    s.machine.Offsets(),
		Keystrokes: s.keystrokes,
		StartedAt:  s.StartedAt,
	}
	if lamp, ok := s.machine.Lamp(); ok {
		v.Lamp = string(lamp)
	}
	return v
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
