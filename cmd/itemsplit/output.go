package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgallion1/itemsplit/internal/pipeline"
	"github.com/dgallion1/itemsplit/internal/segment"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderSummary formats a finished batch.
func renderSummary(r *pipeline.Report, errorLog string) string {
	lines := []string{
		titleStyle.Render("Batch complete"),
		fmt.Sprintf("Filings:    %d", r.Total),
		successStyle.Render(fmt.Sprintf("Succeeded:  %d", r.Succeeded)),
	}
	if r.Failed > 0 {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Failed:     %d", r.Failed)))
		reasons := map[string]int{}
		var order []string
		for _, f := range r.Failures {
			if reasons[f.Reason] == 0 {
				order = append(order, f.Reason)
			}
			reasons[f.Reason]++
		}
		for _, reason := range order {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  %-20s %d", reason, reasons[reason])))
		}
		if errorLog != "" {
			lines = append(lines, dimStyle.Render("Details: "+errorLog))
		}
	} else {
		lines = append(lines, "Failed:     0")
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("Elapsed:    %s", r.Elapsed.Round(time.Millisecond))))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderMatches lists winning headers in catalog order.
func renderMatches(matches []segment.Candidate) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-8s %5s %8s  %s", "ITEM", "SCORE", "POSITION", "HEADER")))
	for _, m := range matches {
		fmt.Fprintf(&b, "\n%-8s %5d %8d  %s", m.Key, m.Score, m.Position, m.RawText)
	}
	return b.String()
}

// progress prints a running count to w while a batch runs.
type progress struct {
	mu     sync.Mutex
	w      io.Writer
	n      int
	failed int
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) done(snap pipeline.JobSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	if snap.Status == pipeline.StatusFailed {
		p.failed++
	}
	fmt.Fprintf(p.w, "\r%s", dimStyle.Render(fmt.Sprintf("processed %d (%d failed)", p.n, p.failed)))
}

func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.n > 0 {
		fmt.Fprintln(p.w)
	}
}
