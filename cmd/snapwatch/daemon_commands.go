package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"snapwatch/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start refresh monitoring in the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Start()
				if err != nil {
					return err
				}
				switch {
				case resp.Started:
					fmt.Fprintln(stdout, "Monitoring started")
				case strings.TrimSpace(resp.Message) != "":
					fmt.Fprintln(stdout, resp.Message)
				default:
					fmt.Fprintln(stdout, "Monitoring already running")
				}
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop refresh monitoring in the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				if resp.Stopped {
					fmt.Fprintln(stdout, "Monitoring stopped")
				} else {
					fmt.Fprintln(stdout, "Monitoring was not running")
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and tracked snap status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				renderStatus(cmd, resp)
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func renderStatus(cmd *cobra.Command, resp *ipc.StatusResponse) {
	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)

	for _, line := range renderSectionHeader("Daemon Status", colorize) {
		fmt.Fprintln(stdout, line)
	}

	rows := [][]string{
		{"Running", yesNo(resp.Running)},
		{"PID", strconv.Itoa(resp.PID)},
		{"Snapd socket", resp.SnapdSocket},
		{"Preferences", resp.PrefsDBPath},
		{"Subscription healthy", yesNo(resp.SubscriptionHealthy)},
		{"Subscription restarts", strconv.FormatInt(resp.SubscriptionRestarts, 10)},
		{"Tracked changes", strconv.Itoa(len(resp.TrackedChanges))},
		{"Dialogs", strconv.Itoa(resp.DialogCount)},
	}
	fmt.Fprintln(stdout, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))

	fmt.Fprintln(stdout)
	for _, line := range renderSectionHeader("Pending Refreshes", colorize) {
		fmt.Fprintln(stdout, line)
	}

	if len(resp.Snaps) == 0 {
		fmt.Fprintln(stdout, "No snaps are awaiting a refresh")
		return
	}

	snapRows := make([][]string, 0, len(resp.Snaps))
	for _, snap := range resp.Snaps {
		snapRows = append(snapRows, []string{
			snap.Name,
			yesNo(snap.Inhibited),
			yesNo(snap.Ignored),
			yesNo(snap.HasDialog),
		})
	}
	fmt.Fprintln(stdout, renderTable([]string{"Snap", "Inhibited", "Ignored", "Dialog"}, snapRows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
}
