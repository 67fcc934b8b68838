package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"immigration-ca/internal/term"
)

func newPrintCmd(opts *options) *cobra.Command {
	var (
		steps   int
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Advance headlessly and print the resulting generation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts, "ca-term")
			if err != nil {
				return err
			}
			s.advance(steps)
			colors := !noColor && isatty.IsTerminal(os.Stdout.Fd())
			if err := term.PrintFrame(cmd.OutOrStdout(), s.sim, colors); err != nil {
				if closeErr := s.close(""); closeErr != nil {
					s.log.Error("closing session", "error", closeErr)
				}
				return err
			}
			summary := term.Census(s.sim.Cells())
			fmt.Fprintf(cmd.OutOrStdout(), "%s generation %d: %s\n", s.sim.Name(), s.sim.Generation(), summary)
			if summary == "extinct" {
				s.log.Warn("population went extinct", "generation", s.sim.Generation())
			}
			return s.close(opts.savePath)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 100, "generations to run before printing")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colours")
	return cmd
}
