// Package support carries the shared state and step definitions for the CLI
// integration features.
package support

import (
	"fmt"
	"net/http/httptest"
	"os"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	TempDir string

	// Command execution state
	LastOutput string
	LastError  error

	// Server state
	HTTPServer         *httptest.Server
	LastHTTPStatusCode int
	LastHTTPResponse   string
	LastHTTPHeaders    map[string]string
}

// NewTestContext creates a fresh context with its own temp directory.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "barscan-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &TestContext{TempDir: tempDir}, nil
}

// Cleanup releases scenario resources.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.HTTPServer != nil {
		testCtx.HTTPServer.Close()
		testCtx.HTTPServer = nil
	}
	return os.RemoveAll(testCtx.TempDir)
}
