/*
PURPOSE:
  Persists the benchmark list as a JSON file.
  Keeps the vendor response verbatim where possible.

REQUIREMENTS:
  User-specified:
  - Save the benchmark listing for later analysis (report subcommand).

  Implementation-discovered:
  - Indented output; the list file doubles as a human-readable record.
  - Prefer the raw response body so vendor fields we do not model survive.

ARCHITECTURE INTEGRATION:
  - Called by: internal/workbench/runner.go, internal/cli
  - Consumes: internal/model.BenchmarkList

ERROR HANDLING:
  - Returns *WriteError on file failure.

IMPLEMENTATION RULES:
  - Use encoding/json; indent with two spaces.

USAGE:
  err := output.WriteBenchmarkList("available_benchmarks.json", list)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go
  - internal/output/report.go

MAINTENANCE:
  - None.
*/

package output

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/mfreitag/benchfetch/internal/model"
)

// WriteBenchmarkList saves the listing to path as indented JSON. When the
// raw response body is available it is re-indented verbatim; otherwise the
// decoded struct is marshalled.
func WriteBenchmarkList(path string, list model.BenchmarkList) error {
	var data []byte

	if len(list.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, list.Raw, "", "  "); err == nil {
			data = buf.Bytes()
		}
	}

	if data == nil {
		var err error
		data, err = json.MarshalIndent(list, "", "  ")
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// ReadBenchmarkList loads a previously saved listing from path.
func ReadBenchmarkList(path string) (model.BenchmarkList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BenchmarkList{}, err
	}

	var list model.BenchmarkList
	if err := json.Unmarshal(data, &list); err != nil {
		return model.BenchmarkList{}, err
	}
	list.Raw = data
	return list, nil
}
