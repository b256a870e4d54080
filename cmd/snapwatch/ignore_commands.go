package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapwatch/internal/ipc"
)

func newIgnoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ignore <snap>",
		Short: "Suppress refresh notifications for a snap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setIgnored(cmd, ctx, args[0], true)
		},
	}
}

func newUnignoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unignore <snap>",
		Short: "Restore refresh notifications for a snap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setIgnored(cmd, ctx, args[0], false)
		},
	}
}

func setIgnored(cmd *cobra.Command, ctx *commandContext, snap string, ignored bool) error {
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.Ignore(snap, ignored)
		if err != nil {
			return err
		}
		stdout := cmd.OutOrStdout()
		if resp.Ignored {
			fmt.Fprintf(stdout, "Notifications for %s suppressed\n", resp.Snap)
		} else {
			fmt.Fprintf(stdout, "Notifications for %s restored\n", resp.Snap)
		}
		return nil
	})
}

func newIgnoredCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ignored",
		Short: "List snaps with suppressed notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.IgnoredList()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Snaps) == 0 {
					fmt.Fprintln(stdout, "No snaps are ignored")
					return nil
				}
				rows := make([][]string, 0, len(resp.Snaps))
				for _, snap := range resp.Snaps {
					rows = append(rows, []string{snap})
				}
				fmt.Fprintln(stdout, renderTable([]string{"Snap"}, rows, []columnAlignment{alignLeft}))
				return nil
			})
		},
	}
}
