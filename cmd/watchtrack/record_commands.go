package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"watchtrack/internal/api"
	"watchtrack/internal/trackeraccess"
)

func newRecordCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newShowCommand(ctx),
		newSummaryCommand(ctx),
		newFinishCommand(ctx),
		newDeleteCommand(ctx),
		newSaveCommand(ctx),
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var finishedOnly, inProgressOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watch records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if finishedOnly && inProgressOnly {
				return fmt.Errorf("--finished and --in-progress are mutually exclusive")
			}
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				records, err := access.Records(cmd.Context())
				if err != nil {
					return err
				}
				records = filterRecords(records, finishedOnly, inProgressOnly)
				if asJSON {
					return writeJSON(cmd, records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No records")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderRecordTable(records))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&finishedOnly, "finished", false, "Only show finished records")
	cmd.Flags().BoolVar(&inProgressOnly, "in-progress", false, "Only show records still in progress")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show one watch record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				record, err := access.Record(cmd.Context(), title)
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("no record for %q", title)
				}
				if asJSON {
					return writeJSON(cmd, record)
				}
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Title:      %s\n", record.Title)
				fmt.Fprintf(stdout, "Episode:    %s\n", valueOrDash(record.Episode))
				fmt.Fprintf(stdout, "Resume:     %s\n", resumeText(record.ResumePosition))
				fmt.Fprintf(stdout, "Finished:   %s\n", yesNo(record.IsFinished))
				fmt.Fprintf(stdout, "Watched:    %s\n", record.TotalTimeWatched)
				if record.LastUpdated != "" {
					fmt.Fprintf(stdout, "Updated:    %s\n", record.LastUpdated)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals across all records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				summary, err := access.Summary(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, summary)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSummaryTable(summary))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newFinishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finish <title>",
		Short: "Mark a record as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				updated, err := access.Finish(cmd.Context(), title)
				if err != nil {
					return err
				}
				if !updated {
					fmt.Fprintf(cmd.OutOrStdout(), "No record for %q\n", title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as finished\n", title)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				removed, err := access.Delete(cmd.Context(), title)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "No record for %q\n", title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", title)
				return nil
			})
		},
	}
}

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var episode, resume string

	cmd := &cobra.Command{
		Use:   "save <title>",
		Short: "Set the episode and resume position of a record, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				saved, err := access.SaveManual(cmd.Context(), title, episode, resume)
				if err != nil {
					return err
				}
				if !saved {
					return fmt.Errorf("title must not be empty")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&episode, "episode", "", "Episode marker to store")
	cmd.Flags().StringVar(&resume, "resume", "", "Resume position (empty clears it)")
	return cmd
}

func filterRecords(records []api.WatchRecord, finishedOnly, inProgressOnly bool) []api.WatchRecord {
	if !finishedOnly && !inProgressOnly {
		return records
	}
	filtered := make([]api.WatchRecord, 0, len(records))
	for _, record := range records {
		if finishedOnly && !record.IsFinished {
			continue
		}
		if inProgressOnly && record.IsFinished {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

func renderRecordTable(records []api.WatchRecord) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Title,
			valueOrDash(record.Episode),
			resumeText(record.ResumePosition),
			record.TotalTimeWatched,
			yesNo(record.IsFinished),
		})
	}
	return renderTable([]column{
		{Header: "Title", MaxWidth: 48},
		{Header: "Episode"},
		{Header: "Resume"},
		{Header: "Watched", Align: alignRight},
		{Header: "Finished"},
	}, rows)
}

func renderSummaryTable(summary api.Summary) string {
	rows := [][]string{
		{"Total", fmt.Sprintf("%d", summary.TotalItems)},
		{"In progress", fmt.Sprintf("%d", summary.InProgressItems)},
		{"Finished", fmt.Sprintf("%d", summary.FinishedItems)},
		{"Time tracked", summary.TotalTimeTracked},
	}
	return renderTable([]column{
		{Header: "Records"},
		{Header: "Value", Align: alignRight},
	}, rows)
}

func resumeText(resume *string) string {
	if resume == nil {
		return "-"
	}
	return valueOrDash(*resume)
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
