package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"texbridge/internal/conversion"
	"texbridge/internal/logparse"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		preamblePath string
		jsonOutput   bool
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a LaTeX fragment to HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			literal, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			var preamble string
			if strings.TrimSpace(preamblePath) != "" {
				if preamble, err = readInput(cmd, preamblePath); err != nil {
					return err
				}
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			result, err := client.Convert(cmd.Context(), conversion.Request{Literal: literal, Preamble: preamble})
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if result.Result != "" {
					fmt.Fprintln(out, result.Result)
				}
				if len(result.Messages) > 0 {
					fmt.Fprintln(out, renderMessageTable(result.Messages, shouldColorize(out)))
				}
			}

			if strict {
				if fatal := logparse.Count(result.Messages, logparse.SeverityFatal); fatal > 0 {
					first, _ := logparse.First(result.Messages, logparse.SeverityFatal)
					return fmt.Errorf("conversion reported %d fatal message(s): %s", fatal, first.What)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preamblePath, "preamble", "", "File holding a LaTeX preamble to send with the fragment")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the daemon reports a fatal message")
	return cmd
}
