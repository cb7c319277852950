/*
PURPOSE:
  Core client for the CIS SecureSuite Member API (WorkBench vendor v1).
  Handles license auth, token validation, benchmark listing, and downloads.

REQUIREMENTS:
  User-specified:
  - Exchange a license for a token (POST /license).
  - Validate tokens (GET /token/check).
  - List benchmarks (GET /benchmarks).
  - Fetch benchmark details and content (GET /benchmarks/{id}[/{FORMAT}]).

  Implementation-discovered:
  - Needs http.Client with a timeout.
  - Auth token travels in the X-SecureSuite-Token header.
  - Content downloads want Accept: application/zip.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli, internal/workbench/runner.go
  - Uses: internal/config, internal/model, internal/output

ERROR HANDLING:
  - Non-200 responses become *APIError with a short body snippet.
  - 404 on a content download becomes *NotFoundError.
  - A 401 during details/download triggers one forced re-auth and retry.

IMPLEMENTATION RULES:
  - Use net/http.
  - Enforce timeouts.
  - One request outstanding at a time; the client is strictly sequential.

USAGE:
  c := workbench.NewClient(cfg)
  token, err := c.Token(ctx, cfg.LicenseFile, false)
  list, err := c.ListBenchmarks(ctx, token)

SELF-HEALING INSTRUCTIONS:
  - If CIS changes the API, update the endpoint paths here.

RELATED FILES:
  - internal/config/config.go
  - internal/model/types.go

MAINTENANCE:
  - Update for new vendor API versions.
*/

package workbench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mfreitag/benchfetch/internal/config"
	"github.com/mfreitag/benchfetch/internal/model"
	"github.com/mfreitag/benchfetch/internal/output"
)

const tokenHeader = "X-SecureSuite-Token"

// checkOKStatus is the exact status string /token/check returns for a
// valid token.
const checkOKStatus = "Token Validation Check Successful."

// Client talks to the SecureSuite Member API.
type Client struct {
	Config *config.Config
	Client *http.Client
	Tokens *TokenStore
}

// NewClient creates a new Client from the configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		Client: &http.Client{Timeout: cfg.RequestTimeout},
		Tokens: NewTokenStore(cfg.TokenFile),
	}
}

// Authenticate exchanges the license credential for a fresh API token and
// records it in the token cache.
func (c *Client) Authenticate(ctx context.Context, cred Credential) (model.TokenInfo, error) {
	url := c.Config.BaseURL + "/license"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(cred.Body))
	if err != nil {
		return model.TokenInfo{}, err
	}
	req.Header.Set("Content-Type", cred.ContentType)

	resp, err := c.Client.Do(req)
	if err != nil {
		return model.TokenInfo{}, fmt.Errorf("license request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.TokenInfo{}, apiError("/license", resp)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.TokenInfo{}, &APIError{Endpoint: "/license", StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid JSON response: %w", err)}
	}
	if payload.Token == "" {
		return model.TokenInfo{}, &CredentialError{Err: fmt.Errorf("no token in license response")}
	}

	info := model.TokenInfo{
		Token:     payload.Token,
		ExpiresAt: time.Now().Add(tokenTTL),
	}
	c.Tokens.Save(info)
	return info, nil
}

// CheckToken validates a token against the server. It returns false for an
// invalid or expired token and an error for anything else unexpected.
func (c *Client) CheckToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.get(ctx, "/token/check", token, "")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return false, &APIError{Endpoint: "/token/check", StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid JSON response: %w", err)}
		}
		return payload.Status == checkOKStatus, nil
	case http.StatusUnauthorized:
		return false, nil
	default:
		return false, apiError("/token/check", resp)
	}
}

// Token returns a usable API token. A cached token is reused when it is
// locally fresh and passes server validation; otherwise a new one is
// obtained from the license at licensePath. forceRefresh skips the cache.
func (c *Client) Token(ctx context.Context, licensePath string, forceRefresh bool) (string, error) {
	if !forceRefresh {
		if info, ok := c.Tokens.Load(); ok && c.Tokens.Fresh(info) {
			valid, err := c.CheckToken(ctx, info.Token)
			if err != nil {
				output.Logger.Warn("Token validation failed, re-authenticating", "error", err)
			} else if valid {
				output.Logger.Info("Using cached token")
				return info.Token, nil
			}
		}
	}

	cred, err := ReadLicense(licensePath)
	if err != nil {
		return "", err
	}

	output.Logger.Info("Requesting new token", "content_type", cred.ContentType)
	info, err := c.Authenticate(ctx, cred)
	if err != nil {
		return "", err
	}
	return info.Token, nil
}

// ListBenchmarks fetches the full benchmark listing.
func (c *Client) ListBenchmarks(ctx context.Context, token string) (model.BenchmarkList, error) {
	resp, err := c.get(ctx, "/benchmarks", token, "")
	if err != nil {
		return model.BenchmarkList{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.BenchmarkList{}, apiError("/benchmarks", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.BenchmarkList{}, fmt.Errorf("reading benchmark list: %w", err)
	}

	var list model.BenchmarkList
	if err := json.Unmarshal(body, &list); err != nil {
		return model.BenchmarkList{}, &APIError{Endpoint: "/benchmarks", StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid JSON response: %w", err)}
	}
	if list.Benchmarks == nil {
		// The envelope is wrong even if the body parsed; likely an HTML
		// error page behind a 200.
		return model.BenchmarkList{}, &APIError{Endpoint: "/benchmarks", StatusCode: resp.StatusCode, Err: fmt.Errorf("response has no Benchmarks field")}
	}

	list.Raw = body
	return list, nil
}

// BenchmarkDetails fetches the metadata document for one benchmark. A 401
// forces one re-authentication and retry before giving up.
func (c *Client) BenchmarkDetails(ctx context.Context, token string, id int64) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/benchmarks/%d", id)

	body, status, err := c.getRetrying401(ctx, endpoint, &token, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{WorkbenchID: id}
	}
	if status != http.StatusOK {
		return nil, &APIError{Endpoint: endpoint, StatusCode: status, Body: snippet(body)}
	}
	if !json.Valid(body) {
		return nil, &APIError{Endpoint: endpoint, StatusCode: status, Err: fmt.Errorf("invalid JSON response")}
	}
	return json.RawMessage(body), nil
}

// Download fetches benchmark content in the given format. The server wraps
// content in a zip archive; the bytes are returned as-is.
func (c *Client) Download(ctx context.Context, token string, id int64, format string) ([]byte, error) {
	endpoint := fmt.Sprintf("/benchmarks/%d/%s", id, strings.ToUpper(format))

	body, status, err := c.getRetrying401(ctx, endpoint, &token, "application/zip")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{WorkbenchID: id, Format: strings.ToUpper(format)}
	}
	if status != http.StatusOK {
		return nil, &APIError{Endpoint: endpoint, StatusCode: status, Body: snippet(body)}
	}
	return body, nil
}

// get issues a GET with the token header and optional Accept header.
func (c *Client) get(ctx context.Context, endpoint, token, accept string) (*http.Response, error) {
	output.Logger.Debug("API request", "method", http.MethodGet, "endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Config.BaseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", endpoint, err)
	}
	return resp, nil
}

// getRetrying401 performs a GET and, on a 401, refreshes the token from the
// configured license and retries exactly once. The token pointer is updated
// so callers keep using the refreshed value.
func (c *Client) getRetrying401(ctx context.Context, endpoint string, token *string, accept string) ([]byte, int, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.get(ctx, endpoint, *token, accept)
		if err != nil {
			return nil, 0, err
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, fmt.Errorf("reading response from %s: %w", endpoint, readErr)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			output.Logger.Info("Token rejected, refreshing", "endpoint", endpoint)
			fresh, tokErr := c.Token(ctx, c.Config.LicenseFile, true)
			if tokErr != nil {
				return nil, resp.StatusCode, tokErr
			}
			*token = fresh
			continue
		}

		return body, resp.StatusCode, nil
	}
}

// apiError builds an *APIError from a non-success response, consuming a
// short snippet of the body for diagnostics.
func apiError(endpoint string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Body:       snippet(body),
	}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
