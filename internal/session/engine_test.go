package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/internal/enigma"
	"github.com/robalobadob/enigma/internal/session"
)

func newSession(t *testing.T, clock clockwork.Clock) *session.Session {
	t.Helper()
	w, err := enigma.NewWiring(enigma.DefaultConfig())
	require.NoError(t, err)
	return session.New(w, clock.Now())
}

func TestNew(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	s := newSession(t, clock)

	v := s.View()
	assert.Len(t, s.ID, 16)
	assert.Equal(t, s.ID, v.ID)
	assert.Equal(t, "AAA", v.Display)
	assert.Equal(t, [3]int{0, 0, 0}, v.Offsets)
	assert.Empty(t, v.Lamp)
	assert.Equal(t, 0, v.Keystrokes)
	assert.WithinDuration(t, clock.Now(), v.StartedAt, 0)
}

func TestSession_Press(t *testing.T) {
	s := newSession(t, clockwork.NewFakeClock())

	lamp, v, err := s.Press("A")
	require.NoError(t, err)
	assert.Equal(t, "Z", lamp)
	assert.Equal(t, "Z", v.Lamp)
	assert.Equal(t, "AAB", v.Display)
	assert.Equal(t, 1, v.Keystrokes)

	v = s.Release()
	assert.Empty(t, v.Lamp)
	assert.Equal(t, "AAB", v.Display)
}

func TestSession_PressInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"two letters", "AB"},
		{"digit", "7"},
		{"space", " "},
		{"non ascii", "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, clockwork.NewFakeClock())
			_, v, err := s.Press(tt.key)
			assert.ErrorIs(t, err, enigma.ErrInvalidLetter)
			assert.Equal(t, "AAA", v.Display)
			assert.Equal(t, 0, v.Keystrokes)
		})
	}
}

func TestSession_Advance(t *testing.T) {
	s := newSession(t, clockwork.NewFakeClock())
	v, err := s.Advance(enigma.Fast)
	require.NoError(t, err)
	assert.Equal(t, "AAB", v.Display)
	assert.Equal(t, 0, v.Keystrokes)

	_, err = s.Advance(5)
	assert.ErrorIs(t, err, enigma.ErrInvalidSlot)
}

func TestSession_Type(t *testing.T) {
	s := newSession(t, clockwork.NewFakeClock())
	out, n, v := s.Type("Hello, World")
	assert.Equal(t, "MNBOA, SVTTB", out)
	assert.Equal(t, 10, n)
	assert.Equal(t, 10, v.Keystrokes)
	assert.Equal(t, "AAK", v.Display)
	assert.Empty(t, v.Lamp)
}

func TestSession_ConcurrentPresses(t *testing.T) {
	s := newSession(t, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 26; j++ {
				_, _, err := s.Press("E")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	v := s.View()
	assert.Equal(t, 8*26, v.Keystrokes)
	assert.Equal(t, "AIA", v.Display)
}

func TestSession_OwnedBy(t *testing.T) {
	tests := []struct {
		name           string
		user, anon     string
		askUser, askAn string
		want           bool
	}{
		{"same user", "u1", "", "u1", "", true},
		{"other user", "u1", "", "u2", "", false},
		{"same guest", "", "g1", "", "g1", true},
		{"other guest", "", "g1", "", "g2", false},
		{"guest who signed in", "", "g1", "u1", "g1", true},
		{"user machine without token", "u1", "", "", "g1", false},
		{"no identity", "", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, clockwork.NewFakeClock())
			s.UserID, s.AnonID = tt.user, tt.anon
			assert.Equal(t, tt.want, s.OwnedBy(tt.askUser, tt.askAn))
		})
	}
}
