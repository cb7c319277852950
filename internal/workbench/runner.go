/*
PURPOSE:
  High-level runner that orchestrates the full download workflow.
  Token -> listing -> filter -> per-benchmark download and save.

REQUIREMENTS:
  User-specified:
  - Download all selected benchmarks in one invocation.
  - Save the listing alongside the artifacts.

  Implementation-discovered:
  - Per-item failures must not abort the rest of the run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/workbench/client.go, internal/output

ERROR HANDLING:
  - Auth and listing failures are fatal.
  - Download/save failures are logged per item; the run fails only when
    every attempted item failed.

IMPLEMENTATION RULES:
  - Strictly sequential: one request in flight at a time.
  - Iterate listing order; no reordering.

USAGE:
  err := workbench.Run(ctx, cfg, workbench.RunOptions{})

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - Update filtering if new assessment statuses appear.
*/

package workbench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mfreitag/benchfetch/internal/config"
	"github.com/mfreitag/benchfetch/internal/model"
	"github.com/mfreitag/benchfetch/internal/output"
)

// RunOptions narrows a bulk run without touching the config file.
type RunOptions struct {
	// IDs restricts the run to specific workbench ids. Empty means all.
	IDs []int64
	// ForceRefresh bypasses the token cache.
	ForceRefresh bool
}

// ArtifactName builds the output filename for one downloaded benchmark.
func ArtifactName(id int64, format string, now time.Time) string {
	return fmt.Sprintf("benchmark_%d_%s_%s.zip", id, strings.ToUpper(format), now.Format("20060102"))
}

// Run executes the full download workflow.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	c := NewClient(cfg)

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	token, err := c.Token(ctx, cfg.LicenseFile, opts.ForceRefresh)
	if err != nil {
		return err
	}

	// 1. Listing Phase
	output.Logger.Info("Fetching benchmark list", "url", cfg.BaseURL+"/benchmarks")
	list, err := c.ListBenchmarks(ctx, token)
	if err != nil {
		return err
	}
	output.Logger.Info("Found benchmarks", "count", len(list.Benchmarks), "total", list.Total)

	listPath := filepath.Join(cfg.OutputDir, cfg.ListFile)
	if err := output.WriteBenchmarkList(listPath, list); err != nil {
		output.Logger.Error("Failed to save benchmark list", "path", listPath, "error", err)
	} else {
		output.Logger.Info("Saved benchmark list", "path", listPath)
	}

	selected := selectBenchmarks(cfg, opts, list.Benchmarks)
	if len(selected) == 0 {
		return fmt.Errorf("no benchmarks selected (of %d listed)", len(list.Benchmarks))
	}

	// 2. Download Phase
	var succeeded, failed int
	for _, b := range selected {
		format, ok := pickFormat(cfg.Formats, b)
		if !ok {
			failed++
			output.Logger.Error("No requested format available",
				"id", b.WorkbenchID, "title", b.Title,
				"wanted", cfg.Formats, "available", b.AvailableFormats,
				"error", &NotFoundError{WorkbenchID: b.WorkbenchID, Format: strings.Join(cfg.Formats, ",")},
			)
			continue
		}

		output.Logger.Info("Downloading benchmark", "id", b.WorkbenchID, "title", b.Title, "format", format)

		data, err := c.Download(ctx, token, b.WorkbenchID, format)
		// A 401 inside Download refreshes the token into the cache; pick
		// up the new value so later items skip the extra auth round-trip.
		if info, ok := c.Tokens.Load(); ok && info.Token != token {
			token = info.Token
		}
		if err != nil {
			failed++
			output.Logger.Error("Download failed", "id", b.WorkbenchID, "format", format, "error", err)
			continue
		}

		path := filepath.Join(cfg.OutputDir, ArtifactName(b.WorkbenchID, format, time.Now()))
		if err := output.WriteArtifact(path, data); err != nil {
			failed++
			output.Logger.Error("Save failed", "id", b.WorkbenchID, "path", path, "error", err)
			continue
		}

		succeeded++
		output.Logger.Info("Saved benchmark", "id", b.WorkbenchID, "path", path, "bytes", len(data))
	}

	output.Logger.Info("Run complete", "succeeded", succeeded, "failed", failed)

	if succeeded == 0 {
		return fmt.Errorf("all %d downloads failed", failed)
	}
	return nil
}

// selectBenchmarks applies the id restriction, the Manual filter, and the
// title exclusion list, preserving listing order.
func selectBenchmarks(cfg *config.Config, opts RunOptions, all []model.Benchmark) []model.Benchmark {
	wanted := make(map[int64]bool, len(opts.IDs))
	for _, id := range opts.IDs {
		wanted[id] = true
	}

	var selected []model.Benchmark
	for _, b := range all {
		if len(wanted) > 0 && !wanted[b.WorkbenchID] {
			continue
		}
		if !cfg.IncludeManual && !b.Automated() {
			output.Logger.Info("Skipping benchmark (manual assessment)", "id", b.WorkbenchID, "title", b.Title)
			continue
		}
		if excluded(cfg.Exclude, b.Title) {
			continue
		}
		selected = append(selected, b)
	}

	for id := range wanted {
		found := false
		for _, b := range all {
			if b.WorkbenchID == id {
				found = true
				break
			}
		}
		if !found {
			output.Logger.Error("Requested benchmark not in listing", "id", id)
		}
	}

	return selected
}

func excluded(patterns []string, title string) bool {
	for _, ex := range patterns {
		if ex == "" {
			continue
		}
		if strings.Contains(strings.ToLower(title), strings.ToLower(ex)) {
			output.Logger.Info("Skipping benchmark (excluded)", "title", title, "filter", ex)
			return true
		}
	}
	return false
}

// pickFormat returns the first configured format the benchmark advertises.
func pickFormat(formats []string, b model.Benchmark) (string, bool) {
	for _, f := range formats {
		if b.HasFormat(f) {
			return strings.ToUpper(f), true
		}
	}
	return "", false
}
