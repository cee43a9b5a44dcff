package main

import (
	"github.com/spf13/cobra"

	"github.com/nihei9/omegarabin/rabin"
)

// Product has no safety caps of its own (spec.md §4.1 places no bound
// on it besides the implicit |S1|x|S2| state count), so this subcommand
// does not consult rabinctl's Limits config the way expand and
// determinize do.

var productFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "product <g1.yaml> <g2.yaml>",
		Short:   "Compute the synchronous product of two Rabin automata",
		Example: `  rabinctl product plant.yaml spec.yaml -o product.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE:    runProduct,
	}
	productFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	g1, err := readAutomatonFile(args[0])
	if err != nil {
		return err
	}
	g2, err := readAutomatonFile(args[1])
	if err != nil {
		return err
	}

	out, err := rabin.Product(g1, g2)
	if err != nil {
		return err
	}

	return writeAutomatonFile(out, *productFlags.output)
}
