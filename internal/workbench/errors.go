/*
PURPOSE:
  Typed errors for the SecureSuite client.
  Lets callers distinguish credential, API, and missing-content failures.

REQUIREMENTS:
  User-specified:
  - Credential problems, HTTP failures, and unknown id/format combinations
    must be distinguishable at the top level.

  Implementation-discovered:
  - APIError wants a response snippet; vendor error bodies are short JSON
    and useful verbatim in logs.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/workbench (client.go, license.go, token.go)
  - Consumed by: internal/cli, internal/workbench/runner.go

ERROR HANDLING:
  - All types implement error and support errors.As; wrapped causes are
    exposed via Unwrap.

IMPLEMENTATION RULES:
  - Keep messages single-line; they end up in slog output.

USAGE:
  var apiErr *workbench.APIError
  if errors.As(err, &apiErr) { ... }

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - Add new types only when callers need to branch on them.
*/

package workbench

import "fmt"

// CredentialError indicates the license file is missing, unreadable, or was
// rejected by the API.
type CredentialError struct {
	Path string
	Err  error
}

func (e *CredentialError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("license credential %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("license credential: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// APIError indicates a non-success HTTP status or a malformed response body
// from the SecureSuite API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string // truncated response snippet, may be empty
	Err        error  // set when the body could not be parsed
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api %s: %v", e.Endpoint, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("api %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api %s: status %d", e.Endpoint, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// NotFoundError indicates the requested benchmark id / format combination
// does not exist on the server or is not advertised by the benchmark.
type NotFoundError struct {
	WorkbenchID int64
	Format      string
}

func (e *NotFoundError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("benchmark %d has no %s download", e.WorkbenchID, e.Format)
	}
	return fmt.Sprintf("benchmark %d not found", e.WorkbenchID)
}
