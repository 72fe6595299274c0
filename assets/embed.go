// assets/embed.go
//
// Static data compiled into the binaries: the default machine wiring and the
// SQL migrations.

package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed wiring.yaml sql/*.sql
var FS embed.FS

// Wiring returns the embedded wiring YAML document.
func Wiring() ([]byte, error) {
	return FS.ReadFile("wiring.yaml")
}

// Migration is a single embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded SQL scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := FS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(b)})
	}
	return out, nil
}
