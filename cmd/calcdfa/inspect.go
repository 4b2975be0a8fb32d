package main

import (
	"fmt"

	automaton "github.com/geange/calcdfa"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <definition>",
		Short: "Summarize an automaton definition",
		Long:  `Loads a definition and reports its size, the states no input reaches and whether any string is accepted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "states: %d\n", m.GetNumStates())
			fmt.Fprintf(out, "alphabet: %d\n", len(m.Alphabet()))
			fmt.Fprintf(out, "transitions: %d\n", m.GetNumTransitions())
			fmt.Fprintf(out, "initial: %s\n", m.InitialState())
			fmt.Fprintf(out, "accepting: %v\n", m.AcceptingStates())
			fmt.Fprintf(out, "unreachable: %v\n", automaton.UnreachableStates(m))
			fmt.Fprintf(out, "deterministic: %t\n", m.IsDeterministic())
			fmt.Fprintf(out, "empty language: %t\n", automaton.IsEmptyLanguage(m))
			return nil
		},
	}
}
