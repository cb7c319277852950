package workbench_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/benchfetch/internal/config"
	"github.com/mfreitag/benchfetch/internal/workbench"
)

// newTestClient creates a Client pointed at the given httptest handler,
// with license and token cache files isolated in a temp directory.
func newTestClient(t *testing.T, handler http.Handler) (*workbench.Client, *config.Config) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.LicenseFile = filepath.Join(dir, "license.xml")
	cfg.TokenFile = filepath.Join(dir, "token.json")
	cfg.OutputDir = dir
	cfg.RequestTimeout = 5 * time.Second

	writeLicense(t, cfg.LicenseFile, "<license>test</license>")

	return workbench.NewClient(cfg), cfg
}

func writeLicense(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

func TestAuthenticate_Success(t *testing.T) {
	var gotContentType string
	var gotBody string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	})

	c, _ := newTestClient(t, mux)

	cred := workbench.Credential{Body: []byte("<license>test</license>"), ContentType: "application/xml"}
	info, err := c.Authenticate(context.Background(), cred)
	require.NoError(t, err)

	assert.Equal(t, "tok-123", info.Token)
	assert.Equal(t, "application/xml", gotContentType)
	assert.Equal(t, "<license>test</license>", gotBody)
	// Expiry is 20 minutes out, give or take test runtime.
	assert.WithinDuration(t, time.Now().Add(20*time.Minute), info.ExpiresAt, 10*time.Second)

	// The token must land in the cache.
	cached, ok := c.Tokens.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-123", cached.Token)
}

func TestAuthenticate_BadStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid license"}`, http.StatusForbidden)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.Authenticate(context.Background(), workbench.Credential{Body: []byte("x"), ContentType: "application/xml"})
	var apiErr *workbench.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid license")
}

func TestAuthenticate_NoTokenInResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	c, _ := newTestClient(t, mux)

	_, err := c.Authenticate(context.Background(), workbench.Credential{Body: []byte("x"), ContentType: "application/xml"})
	var credErr *workbench.CredentialError
	require.ErrorAs(t, err, &credErr)
}

func TestCheckToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /token/check", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("X-SecureSuite-Token") {
		case "good":
			json.NewEncoder(w).Encode(map[string]string{"status": "Token Validation Check Successful."})
		case "weird":
			json.NewEncoder(w).Encode(map[string]string{"status": "something else"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	valid, err := c.CheckToken(ctx, "good")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = c.CheckToken(ctx, "weird")
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = c.CheckToken(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestListBenchmarks(t *testing.T) {
	fixture := `{
		"Benchmarks": [
			{
				"workbenchId": 4711,
				"benchmarkTitle": "CIS Microsoft Windows 10 Enterprise Release 2004 Benchmark",
				"benchmarkVersion": "1.3.0",
				"assessmentStatus": "Automated",
				"availableFormats": ["SCAP", "JSON"],
				"profiles": [{"profileTitle": "Level 1"}]
			},
			{
				"workbenchId": 4712,
				"benchmarkTitle": "CIS Ubuntu Linux 22.04 LTS Benchmark",
				"benchmarkVersion": "2.0.0",
				"assessmentStatus": "Manual",
				"availableFormats": ["YAML"]
			}
		],
		"Total number of results": 2
	}`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /benchmarks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("X-SecureSuite-Token"))
		w.Write([]byte(fixture))
	})

	c, _ := newTestClient(t, mux)

	list, err := c.ListBenchmarks(context.Background(), "tok")
	require.NoError(t, err)

	require.Len(t, list.Benchmarks, 2)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, int64(4711), list.Benchmarks[0].WorkbenchID)
	assert.Equal(t, "1.3.0", list.Benchmarks[0].Version)
	assert.True(t, list.Benchmarks[0].HasFormat("scap"))
	assert.False(t, list.Benchmarks[1].Automated())
	assert.JSONEq(t, fixture, string(list.Raw))
}

func TestListBenchmarks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>maintenance</html>"))
			},
		},
		{
			name: "missing Benchmarks field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"Total number of results": 0}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /benchmarks", tt.handler)
			c, _ := newTestClient(t, mux)

			_, err := c.ListBenchmarks(context.Background(), "tok")
			var apiErr *workbench.APIError
			require.ErrorAs(t, err, &apiErr)
		})
	}
}

func TestDownload_RoundTrip(t *testing.T) {
	content := []byte("PK\x03\x04 fake zip payload")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /benchmarks/4711/JSON", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/zip", r.Header.Get("Accept"))
		assert.Equal(t, "tok", r.Header.Get("X-SecureSuite-Token"))
		w.Write(content)
	})

	c, _ := newTestClient(t, mux)

	data, err := c.Download(context.Background(), "tok", 4711, "json")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDownload_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.Download(context.Background(), "tok", 9999, "SCAP")
	var nfErr *workbench.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, int64(9999), nfErr.WorkbenchID)
	assert.Equal(t, "SCAP", nfErr.Format)
}

func TestDownload_BadStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.Download(context.Background(), "tok", 4711, "JSON")
	var apiErr *workbench.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

// A 401 on a download forces one re-authentication and a retry with the
// fresh token.
func TestDownload_RefreshesTokenOn401(t *testing.T) {
	content := []byte("benchmark content")
	licenseCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		licenseCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "fresh"})
	})
	mux.HandleFunc("GET /benchmarks/4711/JSON", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-SecureSuite-Token") != "fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(content)
	})

	c, _ := newTestClient(t, mux)

	data, err := c.Download(context.Background(), "stale", 4711, "JSON")
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, 1, licenseCalls)
}

func TestToken_ReusesCachedToken(t *testing.T) {
	licenseCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		licenseCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("GET /token/check", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "Token Validation Check Successful."})
	})

	c, cfg := newTestClient(t, mux)
	ctx := context.Background()

	tok, err := c.Token(ctx, cfg.LicenseFile, false)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, licenseCalls)

	// Second call reuses the cache instead of hitting /license again.
	tok, err = c.Token(ctx, cfg.LicenseFile, false)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, licenseCalls)

	// forceRefresh bypasses the cache.
	_, err = c.Token(ctx, cfg.LicenseFile, true)
	require.NoError(t, err)
	assert.Equal(t, 2, licenseCalls)
}

func TestToken_RejectedCachedTokenTriggersReauth(t *testing.T) {
	licenseCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /license", func(w http.ResponseWriter, r *http.Request) {
		licenseCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-new"})
	})
	mux.HandleFunc("GET /token/check", func(w http.ResponseWriter, r *http.Request) {
		// Server never accepts the cached token.
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, cfg := newTestClient(t, mux)

	// Seed the cache with a locally fresh token the server will reject.
	c.Tokens.Save(freshToken("tok-revoked"))

	tok, err := c.Token(context.Background(), cfg.LicenseFile, false)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)
	assert.Equal(t, 1, licenseCalls)
}

func TestToken_MissingLicense(t *testing.T) {
	c, cfg := newTestClient(t, http.NewServeMux())

	_, err := c.Token(context.Background(), filepath.Join(cfg.OutputDir, "no-such-license.xml"), true)
	var credErr *workbench.CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.True(t, errors.Is(err, credErr.Err))
}
