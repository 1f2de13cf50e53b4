package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/combo/jsonparse"
	"github.com/spf13/cobra"
)

func newJSONCmd() *cobra.Command {
	var indent string

	cmd := &cobra.Command{
		Use:   "json <file|->",
		Short: "Parse a JSON document and print it in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			log.Debugf("parsing %d bytes from %s", len(data), args[0])

			value, err := jsonparse.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			text, err := jsonparse.Encode(value, indent)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation for nested values (empty for compact output)")

	return cmd
}

// readInput reads the named file, or standard input when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
