package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"immigration-ca/internal/term"
	"immigration-ca/pkg/core"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the simulation interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts, "ca-term")
			if err != nil {
				return err
			}
			model := term.NewModel(s.sim, term.Options{
				TPS:    opts.cfg.TPS,
				Seed:   opts.cfg.Seed,
				Logger: s.log,
				AfterStep: func(sim core.Sim) {
					s.metrics.ObservePopulation(census(sim))
				},
			})
			_, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err := s.close(opts.savePath); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}
	cmd.Flags().IntVar(&opts.cfg.TPS, "tps", opts.cfg.TPS, "simulation ticks per second")
	return cmd
}
