package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// printSummary writes one row per job of the run followed by the totals
func printSummary(out io.Writer, repo domain.JobRepository, summary *domain.RunSummary) error {
	jobs, err := repo.FindByRun(summary.RunID)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	stats, err := repo.GetStats(summary.RunID)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	fmt.Fprintf(out, "\nChannel: %s\n", summary.Channel.Title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tSTATUS\tDETAIL")
	for _, job := range jobs {
		detail := job.OutputFile
		if job.Status == domain.StatusFailed {
			detail = job.ErrorMessage
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			job.Index+1,
			truncate(job.Title, 40),
			job.Status,
			truncate(detail, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Total: %d  Completed: %d  Failed: %d\n", stats.Total, stats.Completed, stats.Failed)
	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
