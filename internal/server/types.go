// Package server exposes barcode detection over HTTP: a multipart upload
// endpoint, a WebSocket variant for streaming clients, health and metrics.
package server

import (
	"github.com/scanium/barscan/internal/barcode"
	"github.com/scanium/barscan/internal/config"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	detectOpts     barcode.Options
	corsOrigin     string
	maxUploadMB    int64
	overlayEnabled bool
	debugSeed      int64
}

// NewServer creates a detection server from the resolved configuration.
func NewServer(cfg *config.Config) *Server {
	return &Server{
		detectOpts:     cfg.Detection.DetectorOptions(),
		corsOrigin:     cfg.Server.CORSOrigin,
		maxUploadMB:    int64(cfg.Server.MaxUploadMB),
		overlayEnabled: cfg.Server.OverlayEnabled,
		debugSeed:      cfg.Output.DebugSeed,
	}
}

// HealthResponse is the payload of the /health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// DetectResult describes the barcodes found in one image.
type DetectResult struct {
	Barcodes []barcode.BarcodeRect `json:"barcodes"`
	Count    int                   `json:"count"`
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	TimeMs   int64                 `json:"time_ms"`
}

// DetectResponse is the payload of the /detect endpoint.
type DetectResponse struct {
	Success bool          `json:"success"`
	Result  *DetectResult `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
}
