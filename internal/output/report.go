package output

import (
	"fmt"
	"sort"
	"strings"

	"readmegen/internal/sourcestats"
)

// ExtensionRow is one line of the stats report
type ExtensionRow struct {
	Extension string  `json:"extension"`
	Files     int     `json:"files"`
	Total     int     `json:"total"`
	Sloc      int     `json:"sloc"`
	Density   float64 `json:"density"`
}

// SkippedPath describes a path left out of the counts
type SkippedPath struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatsReport is the machine-readable form of a traversal result
type StatsReport struct {
	RunID      string         `json:"runId,omitempty"`
	Extensions []ExtensionRow `json:"extensions"`
	TotalFiles int            `json:"totalFiles"`
	TotalLines int            `json:"totalLines"`
	TotalSloc  int            `json:"totalSloc"`
	Partial    bool           `json:"partial"`
	Skipped    []SkippedPath  `json:"skipped,omitempty"`
}

// NewStatsReport flattens a traversal result into a sorted report.
func NewStatsReport(res *sourcestats.Result, runID string) *StatsReport {
	report := &StatsReport{RunID: runID}
	if res == nil || res.Table == nil {
		return report
	}

	for ext, s := range res.Table.Snapshot() {
		report.Extensions = append(report.Extensions, ExtensionRow{
			Extension: ext,
			Files:     s.Files,
			Total:     s.Total,
			Sloc:      s.Sloc,
			Density:   Ratio(s.Sloc, s.Total),
		})
		report.TotalLines += s.Total
	}
	SortExtensionRows(report.Extensions)

	report.TotalFiles = res.Table.TotalFiles()
	report.TotalSloc = res.Table.TotalSloc()
	report.Partial = res.Partial()

	for _, skip := range res.Skipped {
		sp := SkippedPath{Path: skip.Path}
		if skip.Error != nil {
			sp.Code = string(skip.Error.Code)
			sp.Message = skip.Error.Error()
		}
		report.Skipped = append(report.Skipped, sp)
	}
	return report
}

// SortExtensionRows sorts rows by sloc DESC, files DESC, extension ASC
func SortExtensionRows(rows []ExtensionRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		// Primary: sloc DESC
		if rows[i].Sloc != rows[j].Sloc {
			return rows[i].Sloc > rows[j].Sloc
		}
		// Secondary: files DESC
		if rows[i].Files != rows[j].Files {
			return rows[i].Files > rows[j].Files
		}
		// Tertiary: extension ASC
		return rows[i].Extension < rows[j].Extension
	})
}

// FormatHuman renders the report as an aligned table
func FormatHuman(r *StatsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %7s %9s %9s %8s\n", "EXT", "FILES", "LINES", "SLOC", "DENSITY")
	for _, row := range r.Extensions {
		fmt.Fprintf(&b, "%-10s %7d %9d %9d %8s\n",
			row.Extension, row.Files, row.Total, row.Sloc, FormatFloat(row.Density))
	}
	fmt.Fprintf(&b, "%-10s %7d %9d %9d\n", "total", r.TotalFiles, r.TotalLines, r.TotalSloc)

	if r.Partial {
		fmt.Fprintf(&b, "\nPartial counts: %d paths skipped\n", len(r.Skipped))
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "  %s  %s\n", s.Code, s.Path)
		}
	}
	return b.String()
}
