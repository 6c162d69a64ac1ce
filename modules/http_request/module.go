// Package http_request provides a phase that performs a single HTTP request
// and publishes the response to the argument pool.
package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/phase"
	"github.com/crouilla/phaserunner/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunHttpRequest issues an HTTP request. Required argument: "url".
// Optional argument: "method" (defaults to GET). Declare two outputs to
// receive the status code and body, e.g. outputs = ["status_code", "body"].
// The phase passes only for 2xx responses.
func OnRunHttpRequest(ctx context.Context, args phase.Args) (bool, int, string, error) {
	url, ok := args["url"].(string)
	if !ok {
		return false, 0, "", fmt.Errorf("argument 'url' must be a string, got %T", args["url"])
	}
	method := http.MethodGet
	if m, ok := args["method"].(string); ok {
		method = m
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Making HTTP request", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return false, 0, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, 0, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Received HTTP response", "status", resp.Status)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, 0, "", fmt.Errorf("failed to read response body: %w", err)
	}

	passed := resp.StatusCode >= 200 && resp.StatusCode < 300
	return passed, resp.StatusCode, string(bodyBytes), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunHttpRequest", OnRunHttpRequest)
}
