package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rabinctl",
	Short: "Build and transform Rabin automata for supervisory control synthesis",
	Long: `rabinctl applies the four core transforms to Rabin automata stored as
YAML documents:
  - product: synchronous product with acceptance lifting
  - expand: control-pattern alphabet expansion
  - epsobs: epsilon-observation collapsing
  - determinize: Safra-style pseudo-determinisation`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
