package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/combo/grammar"
	"github.com/dhamidi/combo/parsec"
	"github.com/spf13/cobra"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfParseCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if startProduction != "" {
				if _, err := grammar.Compile(g, startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return err
				}
			}

			log.Infof("%s: %d productions", args[0], len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfParseCmd() *cobra.Command {
	var startProduction string
	var outputFormat string

	cmd := &cobra.Command{
		Use:           "parse <grammar> <file|->",
		Short:         "Parse input with a grammar and dump the syntax tree",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runEbnfParse(cmd, args[0], args[1], startProduction, outputFormat); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.MarkFlagRequired("start")

	return cmd
}

func runEbnfParse(cmd *cobra.Command, grammarFile, inputFile, start, outputFormat string) error {
	g, err := grammar.Load(grammarFile)
	if err != nil {
		return err
	}

	p, err := grammar.Compile(g, start)
	if err != nil {
		return fmt.Errorf("compile grammar: %w", err)
	}

	data, err := readInput(cmd, inputFile)
	if err != nil {
		return err
	}

	root, err := parsec.Run(p, string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", inputFile, err)
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "tree":
		fmt.Fprintln(out, root.String())
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	return nil
}

func printErrors(w io.Writer, err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(w, e)
	}
}
