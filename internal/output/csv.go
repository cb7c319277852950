/*
PURPOSE:
  Writes the benchmark listing to a CSV file.
  Machine-friendly counterpart of the fixed-width report table.

REQUIREMENTS:
  User-specified:
  - CSV export for spreadsheet / scripting use.

  Implementation-discovered:
  - Flush after every write (crash resilience on long listings).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (report subcommand)
  - Consumes: internal/model.Benchmark

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.
  - Use Mutex if concurrent writes are expected.

USAGE:
  w, err := output.NewCSVWriter("benchmarks.csv")
  w.Write(bench)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go
  - internal/output/report.go

MAINTENANCE:
  - Update Write() mapping when the Benchmark struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mfreitag/benchfetch/internal/model"
)

// CSVWriter handles writing benchmarks to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"workbench_id", "title", "version", "benchmark_status",
		"assessment_status", "available_formats", "platform_id",
		"profiles", "workbench_url",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single benchmark to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(b model.Benchmark) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	var titles []string
	for _, p := range b.Profiles {
		titles = append(titles, p.Title)
	}

	record := []string{
		fmt.Sprintf("%d", b.WorkbenchID),
		b.Title,
		b.Version,
		b.Status,
		b.AssessmentStatus,
		strings.Join(b.AvailableFormats, ";"),
		b.PlatformID,
		strings.Join(titles, ";"),
		b.BenchmarksURL,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
