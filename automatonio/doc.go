// Package automatonio reads and writes automaton.RabinAutomaton as YAML
// documents (SPEC_FULL.md §3.1), the way the teacher's aretext-derived
// config loader reads and writes a rule set: plain exported struct
// fields unmarshalled with gopkg.in/yaml.v3, validated after decoding
// rather than during.
package automatonio
