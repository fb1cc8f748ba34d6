package quotelai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/ZaguanLabs/quotelai/settings"
)

// Result codes reported by Tester.
const (
	CodeOK            = "ok"
	CodeMissingAPIKey = "missing_api_key"
	CodeConfigError   = "config_error"
	CodeNoChoices     = "no_choices"
	CodeHTTPError     = "http_error"
	CodeNetworkError  = "network_error"
)

// TestResult is the outcome of a connectivity check.
type TestResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"status_code,omitempty"`
	Details    string `json:"details,omitempty"`
}

// Tester validates the configured endpoint and credentials.
type Tester struct {
	settings SettingsSource
	provider AIProvider
	logger   lgr.L
}

// NewTester creates a connectivity checker.
func NewTester(src SettingsSource, provider AIProvider, logger lgr.L) *Tester {
	if logger == nil {
		logger = lgr.NoOp
	}
	return &Tester{settings: src, provider: provider, logger: logger}
}

// Test sends one minimal non-streaming request.
// A non-nil override is tested instead of the saved settings, so unsaved form
// values can be checked. Nothing is retried.
func (t *Tester) Test(ctx context.Context, override *settings.Settings) TestResult {
	var cfg settings.Settings
	if override != nil {
		cfg = *override
	} else {
		loaded, err := t.settings.Load(ctx)
		if err != nil {
			return TestResult{Code: CodeConfigError, Message: "Could not read settings", Details: err.Error()}
		}
		cfg = loaded
	}

	if cfg.APIKey == "" {
		return TestResult{Code: CodeMissingAPIKey, Message: "API key is not configured"}
	}

	resp, err := t.provider.Complete(ctx, CompletionRequest{
		Endpoint:     cfg.APIURL,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		SystemPrompt: "You are a connectivity check. Reply with OK.",
		UserPrompt:   "Hello",
	})
	if err != nil {
		t.logger.Logf("[WARN] connectivity check failed: %v", err)

		var cerr *ConfigError
		if errors.As(err, &cerr) {
			return TestResult{Code: CodeConfigError, Message: "Request could not be sent", Details: cerr.Error()}
		}

		var perr *ProviderError
		if errors.As(err, &perr) && perr.IsHTTP() {
			status := perr.Status
			if status == "" {
				status = fmt.Sprintf("%d %s", perr.StatusCode, http.StatusText(perr.StatusCode))
			}
			return TestResult{
				Code:       CodeHTTPError,
				Message:    "HTTP " + status,
				StatusCode: perr.StatusCode,
				Details:    perr.Message,
			}
		}
		return TestResult{Code: CodeNetworkError, Message: "Network error", Details: err.Error()}
	}

	if resp.Choices == 0 {
		return TestResult{Code: CodeNoChoices, Message: "Response contained no completion choices"}
	}

	return TestResult{Success: true, Code: CodeOK, Message: "Connection successful", Details: resp.Content}
}
