// cmd/enigma/cli.go
//
// Commands and global flags of the offline CLI. Every command builds a fresh
// machine with its rotors at AAA.

package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/enigma/assets"
	"github.com/robalobadob/enigma/internal/enigma"
	"github.com/robalobadob/enigma/internal/logging"
)

// Globals are the flags shared by every command.
type Globals struct {
	WiringFile string `help:"Path to a wiring YAML file; the built-in wiring is used when empty" type:"path"`
	LogLevel   string `default:"warn" enum:"debug,info,warn,error" help:"Sets the minimum severity level for log messages"`
}

// machine builds a fresh machine (rotors at AAA) from the configured wiring.
func (g *Globals) machine() (*enigma.Machine, error) {
	if _, err := logging.Setup(logging.Config{LogLevel: g.LogLevel, LogOutput: "stderr"}); err != nil {
		return nil, err
	}
	cfg, err := assets.LoadWiring(g.WiringFile)
	if err != nil {
		return nil, err
	}
	m, err := enigma.NewMachine(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("wiring", g.WiringFile).Msg("machine ready")
	return m, nil
}

// EncipherCmd enciphers (or, on a fresh machine, deciphers) a message.
type EncipherCmd struct {
	Text []string `arg:"" optional:"" help:"Message to encipher; read from stdin when omitted"`
}

func (c *EncipherCmd) Run(g *Globals, in io.Reader, out io.Writer) error {
	m, err := g.machine()
	if err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")
	if len(c.Text) == 0 {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(b), "\r\n")
	}
	fmt.Fprintln(out, m.Encipher(text))
	fmt.Fprintf(out, "rotors: %s\n", m.CurrentDisplay())
	return nil
}

// PressCmd presses keys one by one and shows each lamp.
type PressCmd struct {
	Keys string `arg:"" help:"Keys to press one at a time"`
}

func (c *PressCmd) Run(g *Globals, out io.Writer) error {
	m, err := g.machine()
	if err != nil {
		return err
	}
	for _, k := range c.Keys {
		lamp, err := m.PressKey(k)
		if err != nil {
			return err
		}
		m.ReleaseKey()
		fmt.Fprintf(out, "%c -> %c  [%s]\n", unicode.ToUpper(k), lamp, m.CurrentDisplay())
	}
	return nil
}

// WiringCmd prints the wiring tables.
type WiringCmd struct{}

func (c *WiringCmd) Run(g *Globals, out io.Writer) error {
	m, err := g.machine()
	if err != nil {
		return err
	}
	w := m.Wiring()
	fmt.Fprintf(out, "%-9s %s\n", "", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	for slot := enigma.Slow; slot < enigma.NumRotors; slot++ {
		fmt.Fprintf(out, "%-9s %s\n", enigma.SlotName(slot), w.Forward(slot))
		fmt.Fprintf(out, "%-9s %s\n", enigma.SlotName(slot)+"⁻¹", w.Backward(slot))
	}
	fmt.Fprintf(out, "%-9s %s\n", "reflector", w.Reflector())
	return nil
}

// CLI is the kong command tree.
type CLI struct {
	Globals

	Encipher EncipherCmd `cmd:"" help:"Encipher (or decipher) a message from the AAA position"`
	Press    PressCmd    `cmd:"" help:"Press keys one by one, showing the lamp and rotor windows"`
	Wiring   WiringCmd   `cmd:"" help:"Print the rotor and reflector wiring tables"`
}
