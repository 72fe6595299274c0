// assets/wiring.go
//
// Wiring file loader. The server and the CLI both start from here, so a bad
// wiring file fails the process before any machine is built.

package assets

import (
	"fmt"
	"os"

	"github.com/robalobadob/enigma/internal/enigma"
)

// LoadWiring reads the wiring YAML at path, or the embedded default when
// path is empty, and decodes it. Validation is left to enigma.NewWiring.
func LoadWiring(path string) (enigma.Config, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = Wiring()
	}
	if err != nil {
		return enigma.Config{}, fmt.Errorf("read wiring: %w", err)
	}
	return enigma.ParseConfig(data)
}
