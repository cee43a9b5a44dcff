package main

import (
	"github.com/spf13/cobra"

	"github.com/nihei9/omegarabin/rabin"
)

var epsobsFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "epsobs <g.yaml>",
		Short:   "Collapse unobservable events onto a silent event",
		Example: `  rabinctl epsobs plant.yaml -o observed.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runEpsobs,
	}
	epsobsFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runEpsobs(cmd *cobra.Command, args []string) error {
	g, err := readAutomatonFile(args[0])
	if err != nil {
		return err
	}

	out, err := rabin.EpsObservation(g)
	if err != nil {
		return err
	}

	return writeAutomatonFile(out, *epsobsFlags.output)
}
