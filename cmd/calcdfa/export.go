package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		definition string
		format     string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the automaton definition as text or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadAutomaton(definition)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "text":
				data, err = m.MarshalText()
			case "yaml":
				data, err = yaml.Marshal(m)
			default:
				return fmt.Errorf("unknown format %q, want text or yaml", format)
			}
			if err != nil {
				return fmt.Errorf("encode %s: %w", format, err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("exported definition", "path", output, "format", format)
			return nil
		},
	}
	cmd.Flags().StringVar(&definition, "definition", "", "Automaton definition file to convert instead of the built-in calculator")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
