package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	automaton "github.com/geange/calcdfa"
	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	var definition string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Read one line from stdin and report whether it is a valid calculator expression",
		Long: `Reads one line from standard input, strips all whitespace and runs the automaton over it.
Both verdicts exit with status 0; only an unreadable definition is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd, definition)
		},
	}
	cmd.Flags().StringVar(&definition, "definition", "", "Automaton definition file (.dfa text or .yaml) replacing the built-in calculator")
	return cmd
}

func (a *app) runVerify(cmd *cobra.Command, definition string) error {
	m, err := a.loadAutomaton(definition)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "This is a finite state machine which verifies whether the user input expression is a valid expression for a calculator")
	fmt.Fprintln(out, "Enter the input to be tested")

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}
	input := automaton.StripWhitespace(line)

	valid := m.Accepts(input)
	a.logger.Debug("verified input", "input", input, "trace", m.Trace(input), "valid", valid)
	if valid {
		fmt.Fprintf(out, "%s is a valid expression for a calculator input.\n", input)
	} else {
		fmt.Fprintf(out, "%s is not a valid expression for a calculator input.\n", input)
	}
	return nil
}
