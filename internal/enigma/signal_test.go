package enigma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/internal/enigma"
)

func defaultWiring(t *testing.T) *enigma.Wiring {
	t.Helper()
	w, err := enigma.NewWiring(enigma.DefaultConfig())
	require.NoError(t, err)
	return w
}

func TestEncipher_InvolutionWithoutFixedPoints(t *testing.T) {
	w := defaultWiring(t)
	for o0 := 0; o0 < 26; o0++ {
		for o1 := 0; o1 < 26; o1++ {
			for o2 := 0; o2 < 26; o2++ {
				offsets := [3]int{o0, o1, o2}
				for in := 0; in < 26; in++ {
					out := w.Encipher(in, offsets)
					if out == in {
						t.Fatalf("letter %c maps to itself at %v", enigma.Letter(in), offsets)
					}
					if back := w.Encipher(out, offsets); back != in {
						t.Fatalf("%c -> %c -> %c at %v", enigma.Letter(in), enigma.Letter(out), enigma.Letter(back), offsets)
					}
				}
			}
		}
	}
}

func TestEncipher_KnownValues(t *testing.T) {
	w := defaultWiring(t)
	tests := []struct {
		name    string
		in      rune
		offsets [3]int
		want    rune
	}{
		{"A at AAA", 'A', [3]int{0, 0, 0}, 'R'},
		{"A at AAB", 'A', [3]int{0, 0, 1}, 'Z'},
		{"Q at AAA", 'Q', [3]int{0, 0, 0}, 'P'},
		{"Q at DHL", 'Q', [3]int{3, 7, 11}, 'B'},
		{"Q at ZZZ", 'Q', [3]int{25, 25, 25}, 'F'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := enigma.Index(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, enigma.Letter(w.Encipher(in, tt.offsets)))
		})
	}
}

func TestEncipher_RoundTripQ(t *testing.T) {
	w := defaultWiring(t)
	offsets := [3]int{3, 7, 11}
	q, _ := enigma.Index('Q')
	x := w.Encipher(q, offsets)
	assert.Equal(t, 'Q', enigma.Letter(w.Encipher(x, offsets)))
}

func TestIndex(t *testing.T) {
	for _, r := range []rune{'A', 'a'} {
		i, err := enigma.Index(r)
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	}
	i, err := enigma.Index('z')
	require.NoError(t, err)
	assert.Equal(t, 25, i)

	for _, r := range []rune{'1', ' ', '@', '[', 'é'} {
		_, err := enigma.Index(r)
		assert.ErrorIs(t, err, enigma.ErrInvalidLetter)
	}
}
