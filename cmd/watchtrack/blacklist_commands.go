package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"watchtrack/internal/trackeraccess"
)

func newBlacklistCommand(ctx *commandContext) *cobra.Command {
	blacklistCmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage keywords that exclude windows from tracking",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List blacklist keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				keywords, err := access.Blacklist(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, keywords)
				}
				if len(keywords) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Blacklist is empty")
					return nil
				}
				for _, keyword := range keywords {
					fmt.Fprintln(cmd.OutOrStdout(), keyword)
				}
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	addCmd := &cobra.Command{
		Use:   "add <keyword>",
		Short: "Add a blacklist keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.TrimSpace(args[0])
			if keyword == "" {
				return fmt.Errorf("keyword must not be empty")
			}
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				added, err := access.AddKeyword(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%q is already blacklisted\n", keyword)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q\n", keyword)
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <keyword>",
		Aliases: []string{"rm"},
		Short:   "Remove a blacklist keyword",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.TrimSpace(args[0])
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				removed, err := access.RemoveKeyword(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%q is not blacklisted\n", keyword)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", keyword)
				return nil
			})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <title>",
		Short: "Report whether a window title would be ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				blocked, err := access.IsBlacklisted(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if blocked {
					fmt.Fprintln(cmd.OutOrStdout(), "blacklisted")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "not blacklisted")
				}
				return nil
			})
		},
	}

	blacklistCmd.AddCommand(listCmd, addCmd, removeCmd, checkCmd)
	return blacklistCmd
}
