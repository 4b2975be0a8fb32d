package main

import (
	"log/slog"

	automaton "github.com/geange/calcdfa"
	"github.com/geange/calcdfa/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what the persistent flags configure.
type app struct {
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	var logLevel string
	rootCmd := &cobra.Command{
		Use:   "calcdfa",
		Short: "calcdfa checks calculator input with a finite state machine",
		Long: `calcdfa runs a deterministic finite automaton over one line of input and tells whether it
is a valid calculator expression: signed integers joined by + - * / and terminated by =.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.New(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	verifyCmd := newVerifyCmd(a)
	rootCmd.AddCommand(verifyCmd, newExportCmd(a), newInspectCmd(a))

	// Running the bare command verifies with the built-in automaton.
	rootCmd.RunE = verifyCmd.RunE
	rootCmd.Flags().AddFlagSet(verifyCmd.Flags())
	return rootCmd
}

// loadAutomaton returns the calculator automaton, or the one defined at path.
func (a *app) loadAutomaton(path string) (*automaton.Automaton, error) {
	if path == "" {
		return automaton.NewCalculator()
	}
	m, err := automaton.LoadFile(path, automaton.WithDecoderLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded definition", "path", path, "states", m.GetNumStates(), "transitions", m.GetNumTransitions())
	return m, nil
}
