/*
PURPOSE:
  Writes downloaded benchmark content to disk.
  Guarantees a file at the final path always holds a complete download.

REQUIREMENTS:
  User-specified:
  - A failed or partial download must not leave a file claiming success.

  Implementation-discovered:
  - Write to a temp file in the target directory, then rename. Rename is
    atomic on the same filesystem.

ARCHITECTURE INTEGRATION:
  - Called by: internal/workbench/runner.go, internal/cli
  - Consumes: raw bytes from workbench.Client.Download

ERROR HANDLING:
  - All failures surface as *WriteError; the temp file is removed.

IMPLEMENTATION RULES:
  - Temp file lives next to the target so the rename never crosses devices.

USAGE:
  err := output.WriteArtifact("benchmark_4711_JSON_20260831.zip", data)

SELF-HEALING INSTRUCTIONS:
  - Leftover *.tmp files in the output directory are safe to delete.

RELATED FILES:
  - internal/workbench/runner.go

MAINTENANCE:
  - None.
*/

package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError indicates a local write failure (permissions, disk space).
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteArtifact writes data to path atomically. On error no file exists at
// path (unless one was already there, which is left untouched).
func WriteArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
