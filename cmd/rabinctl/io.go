package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/nihei9/omegarabin/automatonio"
)

// readAutomatonFile loads one YAML automaton document from path, or
// from stdin when path is "-" — the same stdin convention vartan's
// compile subcommand uses for an unspecified grammar path.
func readAutomatonFile(path string) (*automaton.RabinAutomaton, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	return automatonio.Decode(data)
}

// writeAutomatonFile writes g as YAML to path, or to stdout when path
// is "-" or empty.
func writeAutomatonFile(g *automaton.RabinAutomaton, path string) error {
	out, err := automatonio.Encode(g)
	if err != nil {
		return err
	}
	if path == "-" || path == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return ioutil.WriteFile(path, out, 0644)
}
