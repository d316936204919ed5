package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"texbridge/internal/logparse"
)

func newParseLogCommand() *cobra.Command {
	var (
		jsonOutput bool
		rawOutput  bool
	)

	cmd := &cobra.Command{
		Use:         "parse-log [file|-]",
		Short:       "Parse a saved daemon conversion log",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && rawOutput {
				return fmt.Errorf("--json and --raw are mutually exclusive")
			}
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			messages := logparse.Parse(content)
			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				if messages == nil {
					messages = []logparse.Message{}
				}
				return writeJSON(cmd, messages)
			case rawOutput:
				if formatted := logparse.Format(messages); formatted != "" {
					fmt.Fprintln(out, strings.TrimRight(formatted, "\n"))
				}
			case len(messages) == 0:
				fmt.Fprintln(out, "No messages")
			default:
				fmt.Fprintln(out, renderMessageTable(messages, shouldColorize(out)))
				fmt.Fprintf(out, "%d message(s): %d fatal, %d error, %d warning\n",
					len(messages),
					logparse.Count(messages, logparse.SeverityFatal),
					logparse.Count(messages, logparse.SeverityError),
					logparse.Count(messages, logparse.SeverityWarning),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print messages as JSON")
	cmd.Flags().BoolVar(&rawOutput, "raw", false, "Re-emit messages in the daemon log format")
	return cmd
}
