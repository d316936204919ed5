package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the conversion daemon if it is not already listening",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			launcher, err := ctx.launcher()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			if launcher.Probe(cmd.Context(), client.Port()).Open {
				fmt.Fprintf(stdout, "Daemon already running on port %d\n", client.Port())
				return nil
			}
			fmt.Fprintln(stdout, "Daemon not running, launching...")
			if err := client.EnsureDaemon(cmd.Context()); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}
			fmt.Fprintf(stdout, "Daemon started on port %d\n", client.Port())
			return nil
		},
	}

	var statusJSON bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon installation and reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			launcher, err := ctx.launcher()
			if err != nil {
				return err
			}
			snap := launcher.Status(cmd.Context(), cfg.Server.Port)
			if statusJSON {
				return writeJSON(cmd, snap)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("texbridge", colorize)

			if snap.Open {
				lines = append(lines, renderStatusLine("Daemon", statusOK, fmt.Sprintf("Listening on %s:%d", snap.ProbeHost, snap.Port), colorize))
			} else {
				detail := fmt.Sprintf("Not listening on %s:%d", snap.ProbeHost, snap.Port)
				if snap.Reason != "" {
					detail += " (" + snap.Reason + ")"
				}
				lines = append(lines, renderStatusLine("Daemon", statusWarn, detail, colorize))
			}
			if strings.TrimSpace(snap.Executable) != "" {
				lines = append(lines, renderStatusLine("Executable", statusOK, snap.Executable, colorize))
			} else {
				lines = append(lines, renderStatusLine("Executable", statusError, "Not installed", colorize))
			}
			lines = append(lines, renderStatusLine("Dependencies", statusKindFromSeverity(snap.Summary.Severity), snap.Summary.Detail, colorize))
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			rows := make([][]string, 0, len(snap.Dependencies))
			for _, dep := range snap.Dependencies {
				detail := dep.Path
				if !dep.Available {
					detail = dep.Detail
				}
				rows = append(rows, []string{dep.Name, dep.Command, yesNo(dep.Available), detail})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable([]column{{title: "Name"}, {title: "Command"}, {title: "Available"}, {title: "Detail"}}, rows))
			return nil
		},
	}
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the status snapshot as JSON")

	return []*cobra.Command{startCmd, statusCmd}
}
