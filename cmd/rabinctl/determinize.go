package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/omegarabin/compressor"
	"github.com/nihei9/omegarabin/rabin"
)

var determinizeFlags = struct {
	output    *string
	showStats *bool
	verbose   *bool
	dumpTrees *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "determinize <g.yaml>",
		Short:   "Pseudo-determinise a Rabin automaton via labelled-tree construction",
		Example: `  rabinctl determinize plant.yaml -o plant.det.yaml --stats`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDeterminize,
	}
	determinizeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	determinizeFlags.showStats = cmd.Flags().Bool("stats", false, "print transition-table compression stats to stderr")
	determinizeFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "log each macro-step to stderr")
	determinizeFlags.dumpTrees = cmd.Flags().Bool("dump-trees", false, "log the labelled tree behind every discovered macro-state to stderr")
	rootCmd.AddCommand(cmd)
}

func runDeterminize(cmd *cobra.Command, args []string) error {
	g, err := readAutomatonFile(args[0])
	if err != nil {
		return err
	}

	limits, err := loadLimits()
	if err != nil {
		return err
	}

	opts := []rabin.Option{rabin.WithLimits(limits)}
	if *determinizeFlags.verbose || *determinizeFlags.dumpTrees {
		opts = append(opts, rabin.WithLogger(rabin.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}))
	}
	if *determinizeFlags.dumpTrees {
		opts = append(opts, rabin.WithTreeDump())
	}

	res, err := rabin.PseudoDet(g, opts...)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}

	if *determinizeFlags.showStats {
		stats, err := compressor.CompressTransitionTable(res.Automaton)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run=%s states=%d original-cells=%d unique-entries=%d row-displacement=%d\n",
			res.RunID, len(res.Automaton.StateList()), stats.OriginalCells, stats.UniqueEntries, stats.RowDisplacement)
	}

	return writeAutomatonFile(res.Automaton, *determinizeFlags.output)
}
