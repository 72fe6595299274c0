// internal/session/types.go
//
// Type definitions for a machine session.
// Defines:
//   - Session: one Enigma machine owned by one client, plus bookkeeping.
//   - View:    a read-only snapshot returned to the HTTP layer.

package session

import (
	"sync"
	"time"

	"github.com/robalobadob/enigma/internal/enigma"
)

// Session holds a single client's machine.
//
// The machine itself is single-threaded; mu serialises the handlers that
// touch it so every keystroke runs step → encipher → display as one unit.
type Session struct {
	ID        string    // Unique session identifier (random hex string).
	StartedAt time.Time // When the machine was switched on.

	// Owner, set before the session is shared and never changed after.
	UserID string // Account that switched the machine on, if signed in.
	AnonID string // Guest cookie that switched the machine on otherwise.

	mu         sync.Mutex
	machine    *enigma.Machine
	keystrokes int
}

// View is a snapshot of a session's visible state.
type View struct {
	ID         string    `json:"machineId"`
	Display    string    `json:"display"`
	Offsets    [3]int    `json:"offsets"`
	Lamp       string    `json:"lamp,omitempty"`
	Keystrokes int       `json:"keystrokes"`
	StartedAt  time.Time `json:"startedAt"`
}
