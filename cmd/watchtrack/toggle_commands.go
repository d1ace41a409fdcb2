package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"watchtrack/internal/api"
	"watchtrack/internal/language"
	"watchtrack/internal/trackeraccess"
)

func newToggleCommand(ctx *commandContext) *cobra.Command {
	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Flip the program or auto-tracking switch",
	}

	programCmd := &cobra.Command{
		Use:   "program",
		Short: "Turn the whole tracker on or off",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				active, err := access.ToggleProgram(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Program %s\n", onOff(active))
				return nil
			})
		},
	}

	trackingCmd := &cobra.Command{
		Use:   "tracking",
		Short: "Turn automatic window sampling on or off",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				active, err := access.ToggleTracking(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Auto tracking %s\n", onOff(active))
				return nil
			})
		},
	}

	toggleCmd.AddCommand(programCmd, trackingCmd)
	return toggleCmd
}

func newLanguageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "language [tag]",
		Short: "Show or set the display language",
		Long: fmt.Sprintf("Show the display language, or set it when a tag is given.\nSupported: %s",
			strings.Join(language.Supported(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				var (
					status api.TrackerStatus
					err    error
				)
				if len(args) == 1 {
					status, err = access.SetLanguage(cmd.Context(), args[0])
				} else {
					status, err = access.Status(cmd.Context())
				}
				if err != nil {
					return err
				}
				direction := "left-to-right"
				if status.RightToLeft {
					direction = "right-to-left"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%s, %s]\n", status.LanguageName, status.Language, direction)
				return nil
			})
		},
	}
}

func onOff(active bool) string {
	if active {
		return "on"
	}
	return "off"
}
