package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"watchtrack/internal/titles"
)

func newNormalizeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "normalize <raw-title>",
		Short:       "Show how a raw window title is split into title and episode",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			result := titles.Normalize(args[0])
			if asJSON {
				return writeJSON(cmd, struct {
					Title   string `json:"title"`
					Episode string `json:"episode"`
				}{result.Title, result.Episode})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Title:   %s\n", valueOrDash(result.Title))
			fmt.Fprintf(cmd.OutOrStdout(), "Episode: %s\n", valueOrDash(result.Episode))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
