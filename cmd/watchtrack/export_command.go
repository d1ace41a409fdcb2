package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"watchtrack/internal/api"
	"watchtrack/internal/config"
	"watchtrack/internal/fileutil"
	"watchtrack/internal/trackeraccess"
)

// exportRecord is the stable on-disk shape of an exported record.
type exportRecord struct {
	Title          string  `json:"title" yaml:"title"`
	Episode        string  `json:"episode" yaml:"episode"`
	ResumePosition *string `json:"resume_position" yaml:"resume_position"`
	IsFinished     bool    `json:"is_finished" yaml:"is_finished"`
	MinutesWatched float64 `json:"total_minutes_watched" yaml:"total_minutes_watched"`
	LastUpdated    string  `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all watch records as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported export format %q (expected json or yaml)", format)
			}
			return ctx.withTracker(cmd, func(access trackeraccess.Access) error {
				records, err := access.Records(cmd.Context())
				if err != nil {
					return err
				}
				data, err := encodeExport(toExportRecords(records), format)
				if err != nil {
					return err
				}

				target := strings.TrimSpace(output)
				if target == "" || target == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				target, err = config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := fileutil.WriteAtomic(afero.NewOsFs(), target, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(records), target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func toExportRecords(records []api.WatchRecord) []exportRecord {
	out := make([]exportRecord, 0, len(records))
	for _, record := range records {
		out = append(out, exportRecord{
			Title:          record.Title,
			Episode:        record.Episode,
			ResumePosition: record.ResumePosition,
			IsFinished:     record.IsFinished,
			MinutesWatched: record.TotalMinutesWatched,
			LastUpdated:    record.LastUpdated,
		})
	}
	return out
}

func encodeExport(records []exportRecord, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	}
	return buf.Bytes(), nil
}
