// internal/enigma/config.go
//
// Build-time wiring configuration for the machine.
//
// A Config is a plain value: three rotor permutations listed left to right
// (slow, medium, fast) and the reflector permutation. It is handed to
// NewWiring / NewMachine explicitly; nothing in this package keeps a global
// copy. The server ships a YAML rendition of the same data in assets/.

package enigma

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the rotor and reflector wiring of a machine.
// Rotors are indexed by slot: Slow, Medium, Fast.
type Config struct {
	Rotors    [NumRotors]string
	Reflector string
}

// DefaultConfig returns the historical three-rotor wiring.
func DefaultConfig() Config {
	return Config{
		Rotors: [NumRotors]string{
			"EKMFLGDQVZNTOWYHXUSPAIBRCJ", // slow
			"AJDKSIRUXBLHWTMCQGZNPYFVOE", // medium
			"BDFHJLCPRTXVZNYEIWGAKMUSQO", // fast
		},
		Reflector: "IXUHFEZDAOMTKQJWNSRLCYPBVG",
	}
}

// wiringFile is the on-disk YAML layout.
type wiringFile struct {
	Rotors struct {
		Slow   string `yaml:"slow"`
		Medium string `yaml:"medium"`
		Fast   string `yaml:"fast"`
	} `yaml:"rotors"`
	Reflector string `yaml:"reflector"`
}

// ParseConfig decodes a YAML wiring document of the form
//
//	rotors:
//	  slow: EKMF...
//	  medium: AJDK...
//	  fast: BDFH...
//	reflector: IXUH...
//
// Letters are upper-cased. The result is not validated here; NewWiring does that.
func ParseConfig(data []byte) (Config, error) {
	var f wiringFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: decode wiring: %w", ErrConfiguration, err)
	}
	cfg := Config{
		Rotors: [NumRotors]string{
			normalize(f.Rotors.Slow),
			normalize(f.Rotors.Medium),
			normalize(f.Rotors.Fast),
		},
		Reflector: normalize(f.Reflector),
	}
	for slot, r := range cfg.Rotors {
		if r == "" {
			return Config{}, fmt.Errorf("%w: missing wiring for %s rotor", ErrConfiguration, SlotName(slot))
		}
	}
	if cfg.Reflector == "" {
		return Config{}, fmt.Errorf("%w: missing reflector wiring", ErrConfiguration)
	}
	return cfg, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
