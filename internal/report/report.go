// Package report renders quiz run history for the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/QS3H/quizdeck/internal/model"
)

const maxTitleWidth = 40

// RenderHistory prints completed runs, newest last, followed by a short
// summary. A totalWidth of 0 means no width constraint.
func RenderHistory(w io.Writer, runs []model.RunRecord, totalWidth int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No completed quizzes yet.")
		return err
	}

	titleWidth := maxTitleWidth
	if totalWidth > 0 {
		// Date, score, and percent columns plus separators take ~30 cells.
		if avail := totalWidth - 30; avail > 0 && avail < titleWidth {
			titleWidth = avail
		}
	}

	headers := []string{"Date", "Quiz", "Score", "Percent"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.FinishedAt.Local().Format("2006-01-02 15:04"),
			runewidth.Truncate(run.QuizTitle, titleWidth, "…"),
			fmt.Sprintf("%d/%d", run.Correct, run.Total),
			fmt.Sprintf("%d%%", run.Percentage),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return renderSummary(w, runs)
}

func renderSummary(w io.Writer, runs []model.RunRecord) error {
	var totalPct, bestPct int
	for _, run := range runs {
		totalPct += run.Percentage
		if run.Percentage > bestPct {
			bestPct = run.Percentage
		}
	}
	if _, err := fmt.Fprintf(w, "Runs: %d\n", len(runs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg: %d%%\n", totalPct/len(runs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best: %d%%\n", bestPct); err != nil {
		return err
	}
	return nil
}
