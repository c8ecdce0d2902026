// Package config defines the barscan configuration and its loading from
// files, environment variables and command-line flags.
package config

import (
	"fmt"
	"slices"

	"github.com/scanium/barscan/internal/barcode"
	"github.com/scanium/barscan/internal/blob"
	"github.com/scanium/barscan/internal/geometry"
)

// Config is the complete configuration for barscan. It covers all commands
// (detect, pdf, serve) and loads from configuration files, environment
// variables and command-line flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Detection DetectionConfig `mapstructure:"detection" yaml:"detection" json:"detection"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
}

// DetectionConfig contains the barcode detection pipeline tunables.
type DetectionConfig struct {
	// MinBlobArea drops connected regions smaller than this many pixels.
	MinBlobArea int `mapstructure:"min_blob_area" yaml:"min_blob_area" json:"min_blob_area"`
	// BlurRadius is the Gaussian pre-blur radius; 0 disables blurring.
	BlurRadius float64 `mapstructure:"blur_radius" yaml:"blur_radius" json:"blur_radius"`
	// AspectRatioMin is the minimum long/short ratio for a blob to count
	// as a bar.
	AspectRatioMin float64 `mapstructure:"aspect_ratio_min" yaml:"aspect_ratio_min" json:"aspect_ratio_min"`
	// ClusterEps and ClusterMinSamples control the density clustering of
	// bars in normalized feature space.
	ClusterEps        float64 `mapstructure:"cluster_eps" yaml:"cluster_eps" json:"cluster_eps"`
	ClusterMinSamples int     `mapstructure:"cluster_min_samples" yaml:"cluster_min_samples" json:"cluster_min_samples"`
	// OrientationMinDeg is the minimum angle, in degrees, between a
	// cluster's enclosing box and its mean bar orientation.
	OrientationMinDeg float64 `mapstructure:"orientation_min_deg" yaml:"orientation_min_deg" json:"orientation_min_deg"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Format selects the CLI result encoding: "json" or "text".
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	// OverlayDir, when set, receives a debug overlay PNG per input image.
	OverlayDir string `mapstructure:"overlay_dir" yaml:"overlay_dir" json:"overlay_dir"`
	// ExtractDir, when set, receives the de-rotated barcode crops.
	ExtractDir string `mapstructure:"extract_dir" yaml:"extract_dir" json:"extract_dir"`
	// DebugSeed seeds the overlay color assignment.
	DebugSeed int64 `mapstructure:"debug_seed" yaml:"debug_seed" json:"debug_seed"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	OverlayEnabled  bool   `mapstructure:"overlay_enabled" yaml:"overlay_enabled" json:"overlay_enabled"`
}

// DefaultConfig returns the configuration with all defaults applied.
func DefaultConfig() Config {
	det := barcode.DefaultOptions()
	return Config{
		LogLevel: "info",
		Detection: DetectionConfig{
			MinBlobArea:       det.Blob.MinArea,
			BlurRadius:        det.Blob.BlurRadius,
			AspectRatioMin:    det.AspectRatioMin,
			ClusterEps:        det.ClusterEps,
			ClusterMinSamples: det.ClusterMinSamples,
			OrientationMinDeg: geometry.Degrees(det.OrientationMinDiff),
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     32,
			TimeoutSec:      60,
			ShutdownTimeout: 10,
			OverlayEnabled:  true,
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (want one of %v)", c.LogLevel, logLevels)
	}
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate checks the detection tunables.
func (c *DetectionConfig) Validate() error {
	if c.MinBlobArea < 1 {
		return fmt.Errorf("min_blob_area must be positive, got %d", c.MinBlobArea)
	}
	if c.BlurRadius < 0 {
		return fmt.Errorf("blur_radius must not be negative, got %g", c.BlurRadius)
	}
	if c.AspectRatioMin <= 0 {
		return fmt.Errorf("aspect_ratio_min must be positive, got %g", c.AspectRatioMin)
	}
	if c.ClusterEps <= 0 {
		return fmt.Errorf("cluster_eps must be positive, got %g", c.ClusterEps)
	}
	if c.ClusterMinSamples < 1 {
		return fmt.Errorf("cluster_min_samples must be at least 1, got %d", c.ClusterMinSamples)
	}
	if c.OrientationMinDeg < 0 || c.OrientationMinDeg > 90 {
		return fmt.Errorf("orientation_min_deg must be in [0, 90], got %g", c.OrientationMinDeg)
	}
	return nil
}

// Validate checks the output settings.
func (c *OutputConfig) Validate() error {
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid output format %q (want json or text)", c.Format)
	}
	return nil
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535], got %d", c.Port)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if c.TimeoutSec < 1 {
		return fmt.Errorf("timeout_sec must be positive, got %d", c.TimeoutSec)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative, got %d", c.ShutdownTimeout)
	}
	return nil
}

// DetectorOptions maps the detection tunables onto pipeline options.
func (c *DetectionConfig) DetectorOptions() barcode.Options {
	opts := barcode.DefaultOptions()
	opts.Blob = blob.Params{MinArea: c.MinBlobArea, BlurRadius: c.BlurRadius}
	opts.AspectRatioMin = c.AspectRatioMin
	opts.ClusterEps = c.ClusterEps
	opts.ClusterMinSamples = c.ClusterMinSamples
	opts.OrientationMinDiff = geometry.Radians(c.OrientationMinDeg)
	return opts
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
