package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type reportFormat string

const (
	reportText reportFormat = "text"
	reportJSON reportFormat = "json"
	reportYAML reportFormat = "yaml"
)

func parseReportFormat(value string) (reportFormat, error) {
	switch f := reportFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return reportText, nil
	case reportText, reportJSON, reportYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

type report struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	Status     string          `json:"status" yaml:"status"`
	ExitCode   int             `json:"exit_code" yaml:"exit_code"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Stat       domain.SyncStat `json:"stat" yaml:"stat"`
}

func writeReport(w io.Writer, format reportFormat, run domain.SyncRun) error {
	r := report{
		RunID:      run.ID,
		Status:     run.Status,
		ExitCode:   run.ExitCode,
		Error:      run.ErrorMessage,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Stat:       run.Stat,
	}

	switch format {
	case reportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case reportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		printStatistics(w, r)
		return nil
	}
}

func printStatistics(w io.Writer, r report) {
	_, _ = fmt.Fprintf(w, "Run %s: %s (exit code %d)\n", r.RunID, r.Status, r.ExitCode)
	if r.Error != "" {
		_, _ = fmt.Fprintf(w, "Error: %s\n", r.Error)
	}
	_, _ = fmt.Fprintf(w, "Records: %d processed, %d skipped\n", r.Stat.ProcessedRecords, r.Stat.SkippedRecords)

	sections := []struct {
		title string
		items []string
	}{
		{"Group Created", r.Stat.CreatedGroups},
		{"Group Updated", r.Stat.UpdatedGroups},
		{"Group Failure", r.Stat.FailedGroups},
		{"Group Held", r.Stat.HeldGroups},
		{"User Created", r.Stat.CreatedUsers},
		{"User Failure", r.Stat.FailedUsers},
		{"Membership Added", r.Stat.AddedMembers},
		{"Membership Failure", r.Stat.FailedMembers},
		{"Membership Removed", r.Stat.RemovedMembers},
		{"Removal Failure", r.Stat.FailedRemovals},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s:\n", s.title)
		for _, txt := range s.items {
			_, _ = fmt.Fprintf(w, "\t%s\n", txt)
		}
	}
}
