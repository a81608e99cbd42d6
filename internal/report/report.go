// Package report renders ranked similarity results for the terminal:
// a table, a horizontal score bar chart, and a short summary string.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"embedlab/internal/models"
)

const barWidth = 40

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	topStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Table renders the ranked rows as an aligned text table.
func Table(rows []models.ResultRow) string {
	if len(rows) == 0 {
		return "no results"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-8s %-12s %s", "rank", "score", "category", "text")))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-5d %-8.4f %-12s %s\n", r.Rank, r.Score, r.Category, truncate(r.Text, 70)))
	}
	return b.String()
}

// Bars renders a horizontal bar per row, scaled to the highest score.
func Bars(rows []models.ResultRow) string {
	if len(rows) == 0 {
		return ""
	}
	maxScore := rows[0].Score
	for _, r := range rows {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	if maxScore <= 0 {
		maxScore = 1
	}

	var b strings.Builder
	for _, r := range rows {
		n := int(r.Score / maxScore * barWidth)
		if n < 0 {
			n = 0
		}
		bar := barStyle.Render(strings.Repeat("█", n))
		b.WriteString(fmt.Sprintf("Rank %-3d %s %.4f\n", r.Rank, bar, r.Score))
	}
	return b.String()
}

// Summary produces a short natural-language reading of the results: the
// top sentence and how concentrated the top rows are in its category.
func Summary(rows []models.ResultRow, modelName string) string {
	if len(rows) == 0 {
		return fmt.Sprintf("[%s] no results. Try lowering the threshold or switching models.", modelName)
	}

	top := rows[0]
	sameCategory := 0
	for _, r := range rows {
		if r.Category == top.Category {
			sameCategory++
		}
	}
	concentration := float64(sameCategory) / float64(len(rows)) * 100

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] analysis:\n", modelName)
	fmt.Fprintf(&b, "- closest sentence: %s (score %.4f)\n", topStyle.Render(truncate(top.Text, 70)), top.Score)
	fmt.Fprintf(&b, "- %.0f%% of the top %d rows fall in category %s",
		concentration, len(rows), categoryStyle.Render(top.Category))
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
