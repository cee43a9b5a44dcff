package main

import (
	"github.com/spf13/cobra"

	"github.com/nihei9/omegarabin/automaton"
	"github.com/nihei9/omegarabin/rabin"
)

var expandFlags = struct {
	output       *string
	controllable *[]string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "expand <g.yaml>",
		Short:   "Expand an automaton's alphabet into control patterns",
		Example: `  rabinctl expand plant.yaml -c a,b -o expanded.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runExpand,
	}
	expandFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	expandFlags.controllable = cmd.Flags().StringSliceP("controllable", "c", nil, "names of controllable events")
	rootCmd.AddCommand(cmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	g, err := readAutomatonFile(args[0])
	if err != nil {
		return err
	}

	var controllable []automaton.Event
	for _, name := range *expandFlags.controllable {
		ev, ok := g.Events.Reader().ByName(name)
		if !ok {
			continue
		}
		controllable = append(controllable, ev)
	}

	limits, err := loadLimits()
	if err != nil {
		return err
	}

	out, err := rabin.ExpandToControlPatterns(g, controllable, rabin.WithLimits(limits))
	if err != nil {
		return err
	}

	return writeAutomatonFile(out, *expandFlags.output)
}
