/*
PURPOSE:
  Disk cache for SecureSuite API tokens.
  Tokens live twenty minutes; caching avoids burning a license POST per call.

REQUIREMENTS:
  User-specified:
  - Reuse a cached token while it is still valid.
  - Support forcing a refresh.

  Implementation-discovered:
  - Local freshness check applies a 30s slack before expiry.
  - A locally fresh token is still revalidated server-side before reuse
    (tokens can be revoked).

ARCHITECTURE INTEGRATION:
  - Used by: internal/workbench/client.go (Token flow), internal/cli
  - Storage: JSON file next to the working directory (config token_file)

ERROR HANDLING:
  - Cache read/write failures are soft: a missing or corrupt cache means
    "no token", a failed save is logged and ignored.

IMPLEMENTATION RULES:
  - Never log the token value at Info level outside the explicit token
    subcommand.

USAGE:
  store := workbench.NewTokenStore("securesuite_token.json")
  info, ok := store.Load()

SELF-HEALING INSTRUCTIONS:
  - Delete the token file if auth behaves oddly; it is pure cache.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - Update TTL constant if CIS changes token lifetime.
*/

package workbench

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mfreitag/benchfetch/internal/model"
	"github.com/mfreitag/benchfetch/internal/output"
)

// tokenTTL is how long the API considers a freshly issued token valid.
const tokenTTL = 20 * time.Minute

// TokenStore persists TokenInfo as JSON at a fixed path.
type TokenStore struct {
	path string
	now  func() time.Time
}

// NewTokenStore creates a store backed by the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path, now: time.Now}
}

// Load returns the cached token, if any. A missing or unparseable cache
// file is treated as an empty cache.
func (s *TokenStore) Load() (model.TokenInfo, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.TokenInfo{}, false
	}

	var info model.TokenInfo
	if err := json.Unmarshal(data, &info); err != nil {
		output.Logger.Warn("Ignoring corrupt token cache", "path", s.path, "error", err)
		return model.TokenInfo{}, false
	}
	return info, info.Token != ""
}

// Save writes the token to the cache file. Failures are logged, not fatal:
// the token is still usable for the current run.
func (s *TokenStore) Save(info model.TokenInfo) {
	data, err := json.Marshal(info)
	if err != nil {
		output.Logger.Warn("Could not encode token cache", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		output.Logger.Warn("Could not save token cache", "path", s.path, "error", err)
	}
}

// Fresh reports whether the cached token is locally usable right now.
func (s *TokenStore) Fresh(info model.TokenInfo) bool {
	return info.Fresh(s.now())
}
