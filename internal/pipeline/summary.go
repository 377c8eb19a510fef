package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
)

// Summary counts document outcomes per category for one run.
type Summary struct {
	RunID      string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time

	counts     map[string]map[domain.Status]int
	categories []string
}

func newSummary(runID, mode string) *Summary {
	return &Summary{
		RunID:     runID,
		Mode:      mode,
		StartedAt: time.Now(),
		counts:    make(map[string]map[domain.Status]int),
	}
}

// touch registers a category so it is reported even when it yields no documents.
func (s *Summary) touch(category string) {
	if _, ok := s.counts[category]; ok {
		return
	}
	s.counts[category] = make(map[domain.Status]int)
	s.categories = append(s.categories, category)
}

func (s *Summary) record(category string, status domain.Status) {
	s.touch(category)
	s.counts[category][status]++
}

// Categories returns the categories in the order they were first seen.
func (s *Summary) Categories() []string {
	return slices.Clone(s.categories)
}

// Count returns the number of documents of category that ended with status.
func (s *Summary) Count(category string, status domain.Status) int {
	return s.counts[category][status]
}

// Totals sums every category.
func (s *Summary) Totals() map[domain.Status]int {
	totals := make(map[domain.Status]int, len(domain.Statuses))
	for _, byStatus := range s.counts {
		for status, n := range byStatus {
			totals[status] += n
		}
	}
	return totals
}

// Failed returns the number of failed documents across all categories.
func (s *Summary) Failed() int {
	n := 0
	for status, count := range s.Totals() {
		if status.Failed() {
			n += count
		}
	}
	return n
}

// Render writes the per-category table to w.
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Run " + s.RunID + " (" + s.Mode + ")")

	header := table.Row{"Category"}
	for _, status := range domain.Statuses {
		header = append(header, string(status))
	}
	t.AppendHeader(header)

	for _, category := range s.categories {
		row := table.Row{category}
		for _, status := range domain.Statuses {
			row = append(row, s.Count(category, status))
		}
		t.AppendRow(row)
	}

	totals := s.Totals()
	footer := table.Row{"Total"}
	for _, status := range domain.Statuses {
		footer = append(footer, totals[status])
	}
	t.AppendFooter(footer)

	t.Render()
}
