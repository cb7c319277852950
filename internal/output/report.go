/*
PURPOSE:
  Renders the benchmark listing as a fixed-width text table.
  Quick answer to "which automated benchmarks can I download, in what formats".

REQUIREMENTS:
  User-specified:
  - Tabular overview of id, title, version, assessment status, formats,
    and profiles.
  - Manual benchmarks are skipped by default (nothing to assess with them).

  Implementation-discovered:
  - Long cells are truncated with "..." so the table stays readable in a
    terminal.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (report subcommand)
  - Consumes: internal/model.Benchmark

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Flush-per-row is unnecessary here (single pass, small file); buffer and
    close.

USAGE:
  w, err := output.NewTableWriter("benchmarks.txt")
  w.Write(bench)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If columns change, update both the header and the Write() mapping.

RELATED FILES:
  - internal/model/types.go
  - internal/output/csv.go

MAINTENANCE:
  - Update column widths if vendor titles keep growing.
*/

package output

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mfreitag/benchfetch/internal/model"
)

// Column widths of the report table.
const (
	colID       = 15
	colTitle    = 50
	colVersion  = 15
	colStatus   = 15
	colFormats  = 30
	colProfiles = 50
)

// TableWriter writes benchmarks as rows of a fixed-width text table.
type TableWriter struct {
	file *os.File
	mu   sync.Mutex
}

// NewTableWriter creates the report file and writes the table header.
// It overwrites the file if it exists.
func NewTableWriter(path string) (*TableWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s\n",
		colID, "workbenchId",
		colTitle, "benchmarkTitle",
		colVersion, "benchmarkVersion",
		colStatus, "assessmentStatus",
		colFormats, "availableFormats",
		colProfiles, "profiles",
	)
	rule := strings.Repeat("-", colID+colTitle+colVersion+colStatus+colFormats+colProfiles+5) + "\n"

	if _, err := f.WriteString(header + rule); err != nil {
		f.Close()
		return nil, err
	}

	return &TableWriter{file: f}, nil
}

// Write appends one benchmark row.
// It is thread-safe.
func (tw *TableWriter) Write(b model.Benchmark) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	formats := strings.Join(b.AvailableFormats, ", ")
	if formats == "" {
		formats = "N/A"
	}

	var titles []string
	for _, p := range b.Profiles {
		if p.Title != "" {
			titles = append(titles, p.Title)
		}
	}
	profiles := strings.Join(titles, ", ")
	if profiles == "" {
		profiles = "N/A"
	}

	row := fmt.Sprintf("%-*d %-*s %-*s %-*s %-*s %-*s\n",
		colID, b.WorkbenchID,
		colTitle, truncate(b.Title, colTitle),
		colVersion, truncate(b.Version, colVersion),
		colStatus, truncate(b.AssessmentStatus, colStatus),
		colFormats, truncate(formats, colFormats),
		colProfiles, truncate(profiles, colProfiles),
	)

	_, err := tw.file.WriteString(row)
	return err
}

// Close closes the underlying file.
func (tw *TableWriter) Close() error {
	return tw.file.Close()
}

// truncate shortens s to fit a column of width w, marking cuts with "...".
// Counts runes, not bytes: vendor titles contain non-ASCII and a byte
// slice could split a rune.
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-3]) + "..."
}
