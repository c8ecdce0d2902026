package server

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "golang.org/x/image/bmp"

	"github.com/scanium/barscan/internal/barcode"
	"github.com/scanium/barscan/internal/version"
)

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/detect", s.corsMiddleware(s.detectHandler))
	mux.HandleFunc("/ws", s.detectWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// detectHandler processes a multipart image upload and returns the detected
// barcodes as JSON, or the debug overlay PNG when overlay output is
// requested.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}
	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	if r.FormValue("overlay") == "1" || r.FormValue("format") == "overlay" {
		s.handleOverlayOutput(w, img)
		return
	}

	result := s.detect(img)
	detectRequestsTotal.WithLabelValues("http", "ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DetectResponse{Success: true, Result: result}); err != nil {
		slog.Error("Failed to encode detect response", "error", err)
	}
}

// handleOverlayOutput renders the clustering overlay for an uploaded image.
func (s *Server) handleOverlayOutput(w http.ResponseWriter, img image.Image) {
	if !s.overlayEnabled {
		http.Error(w, "overlay output disabled", http.StatusForbidden)
		return
	}

	var overlay image.Image
	opts := s.detectOpts
	opts.Debug = true
	opts.DebugSeed = s.debugSeed
	opts.DebugSink = func(o image.Image) { overlay = o }
	barcode.FindBarcodes(img, opts)

	detectRequestsTotal.WithLabelValues("http", "ok").Inc()
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, overlay); err != nil {
		slog.Error("Failed to encode overlay image", "error", err)
	}
}

// detect runs the detection pipeline and records the processing metrics.
func (s *Server) detect(img image.Image) *DetectResult {
	start := time.Now()
	rects := barcode.FindBarcodes(img, s.detectOpts)
	elapsed := time.Since(start)

	detectDuration.Observe(elapsed.Seconds())
	barcodesDetected.Observe(float64(len(rects)))

	b := img.Bounds()
	return &DetectResult{
		Barcodes: rects,
		Count:    len(rects),
		Width:    b.Dx(),
		Height:   b.Dy(),
		TimeMs:   elapsed.Milliseconds(),
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(DetectResponse{Success: false, Error: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
