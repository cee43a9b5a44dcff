package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/nihei9/omegarabin/rabin"
)

// configDoc is the on-disk shape of rabinctl's config file: an override
// for a subset of rabin.Limits. Adapted from the teacher's
// aretext-derived ConfigPath/LoadOrCreateConfig pair in app/config.go —
// same xdg.ConfigFile-based discovery and missing-file fallback, swapped
// from gopkg.in/yaml.v3 to github.com/BurntSushi/toml since SPEC_FULL.md
// §2.4 chose TOML for rabinctl's own configuration (the automaton
// documents themselves stay YAML, per §3.1).
type configDoc struct {
	MaxNodesPerTree            int `toml:"max_nodes_per_tree"`
	MaxChildrenPerNode         int `toml:"max_children_per_node"`
	MaxNewChildrenPerMacroStep int `toml:"max_new_children_per_macro_step"`
	MaxStatesPerNewChild       int `toml:"max_states_per_new_child"`
	MaxMacroStates             int `toml:"max_macro_states"`
	MaxMacroSteps              int `toml:"max_macro_steps"`
	MaxControlPatternEvents    int `toml:"max_control_pattern_events"`
}

// configPath returns the path rabinctl looks for its config file at.
func configPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("rabinctl", "config.toml"))
}

// loadLimits reads rabinctl's config file if present and overlays any
// fields it sets onto rabin.DefaultLimits(); a missing file is not an
// error, matching LoadOrCreateConfig's "no config yet" branch.
func loadLimits() (rabin.Limits, error) {
	limits := rabin.DefaultLimits()

	path, err := configPath()
	if err != nil {
		return limits, err
	}

	var cfg configDoc
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return limits, nil
		}
		return limits, err
	}

	if cfg.MaxNodesPerTree > 0 {
		limits.MaxNodesPerTree = cfg.MaxNodesPerTree
	}
	if cfg.MaxChildrenPerNode > 0 {
		limits.MaxChildrenPerNode = cfg.MaxChildrenPerNode
	}
	if cfg.MaxNewChildrenPerMacroStep > 0 {
		limits.MaxNewChildrenPerMacroStep = cfg.MaxNewChildrenPerMacroStep
	}
	if cfg.MaxStatesPerNewChild > 0 {
		limits.MaxStatesPerNewChild = cfg.MaxStatesPerNewChild
	}
	if cfg.MaxMacroStates > 0 {
		limits.MaxMacroStates = cfg.MaxMacroStates
	}
	if cfg.MaxMacroSteps > 0 {
		limits.MaxMacroSteps = cfg.MaxMacroSteps
	}
	if cfg.MaxControlPatternEvents > 0 {
		limits.MaxControlPatternEvents = cfg.MaxControlPatternEvents
	}

	return limits, nil
}
