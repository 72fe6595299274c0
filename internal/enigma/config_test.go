package enigma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/internal/enigma"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    enigma.Config
		wantErr bool
	}{
		{
			name: "default wiring",
			doc: `
rotors:
  slow: EKMFLGDQVZNTOWYHXUSPAIBRCJ
  medium: AJDKSIRUXBLHWTMCQGZNPYFVOE
  fast: BDFHJLCPRTXVZNYEIWGAKMUSQO
reflector: IXUHFEZDAOMTKQJWNSRLCYPBVG
`,
			want: enigma.DefaultConfig(),
		},
		{
			name: "lower case is normalized",
			doc: `
rotors:
  slow: " ekmflgdqvzntowyhxuspaibrcj "
  medium: ajdksiruxblhwtmcqgznpyfvoe
  fast: bdfhjlcprtxvznyeiwgakmusqo
reflector: ixuhfezdaomtkqjwnsrlcypbvg
`,
			want: enigma.DefaultConfig(),
		},
		{
			name: "missing rotor",
			doc: `
rotors:
  slow: EKMFLGDQVZNTOWYHXUSPAIBRCJ
  fast: BDFHJLCPRTXVZNYEIWGAKMUSQO
reflector: IXUHFEZDAOMTKQJWNSRLCYPBVG
`,
			wantErr: true,
		},
		{
			name: "missing reflector",
			doc: `
rotors:
  slow: EKMFLGDQVZNTOWYHXUSPAIBRCJ
  medium: AJDKSIRUXBLHWTMCQGZNPYFVOE
  fast: BDFHJLCPRTXVZNYEIWGAKMUSQO
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			doc:     "rotors: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enigma.ParseConfig([]byte(tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, enigma.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
