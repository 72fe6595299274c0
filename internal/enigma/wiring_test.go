package enigma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/internal/enigma"
)

func TestInvert(t *testing.T) {
	tests := []struct {
		name    string
		perm    string
		want    string
		wantErr error
	}{
		{
			"identity",
			"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
			"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
			nil,
		},
		{
			"slow rotor",
			"EKMFLGDQVZNTOWYHXUSPAIBRCJ",
			"UWYGADFPVZBECKMTHXSLRINQOJ",
			nil,
		},
		{
			"medium rotor",
			"AJDKSIRUXBLHWTMCQGZNPYFVOE",
			"AJPCZWRLFBDKOTYUQGENHXMIVS",
			nil,
		},
		{
			"fast rotor",
			"BDFHJLCPRTXVZNYEIWGAKMUSQO",
			"TAGBPCSDQEUFVNZHYIXJWLRKOM",
			nil,
		},
		{
			"too short",
			"ABC",
			"",
			enigma.ErrNotPermutation,
		},
		{
			"duplicate letter",
			"AACDEFGHIJKLMNOPQRSTUVWXYZ",
			"",
			enigma.ErrNotPermutation,
		},
		{
			"lowercase letter",
			"aBCDEFGHIJKLMNOPQRSTUVWXYZ",
			"",
			enigma.ErrNotPermutation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enigma.Invert(tt.perm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, enigma.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvert_RoundTrip(t *testing.T) {
	for _, perm := range enigma.DefaultConfig().Rotors {
		inv, err := enigma.Invert(perm)
		require.NoError(t, err)
		back, err := enigma.Invert(inv)
		require.NoError(t, err)
		assert.Equal(t, perm, back)
	}
}

func TestNewWiring(t *testing.T) {
	valid := enigma.DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*enigma.Config)
		wantErr error
	}{
		{
			"default wiring",
			func(*enigma.Config) {},
			nil,
		},
		{
			"rotor not a permutation",
			func(c *enigma.Config) { c.Rotors[enigma.Medium] = "AJDKSIRUXBLHWTMCQGZNPYFVOA" },
			enigma.ErrNotPermutation,
		},
		{
			"rotor with wrong length",
			func(c *enigma.Config) { c.Rotors[enigma.Fast] = "BDFHJLCPRTXVZNYEIWGAKMUSQ" },
			enigma.ErrNotPermutation,
		},
		{
			"reflector not a permutation",
			func(c *enigma.Config) { c.Reflector = "IXUHFEZDAOMTKQJWNSRLCYPBVV" },
			enigma.ErrNotPermutation,
		},
		{
			"reflector with fixed point",
			func(c *enigma.Config) { c.Reflector = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" },
			enigma.ErrFixedPoint,
		},
		{
			"reflector not self-inverse",
			func(c *enigma.Config) { c.Reflector = "BCDEFGHIJKLMNOPQRSTUVWXYZA" },
			enigma.ErrNotInvolution,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			w, err := enigma.NewWiring(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, enigma.ErrConfiguration)
				assert.Nil(t, w)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg.Rotors[enigma.Slow], w.Forward(enigma.Slow))
			assert.Equal(t, "UWYGADFPVZBECKMTHXSLRINQOJ", w.Backward(enigma.Slow))
			assert.Equal(t, cfg.Reflector, w.Reflector())
		})
	}
}
