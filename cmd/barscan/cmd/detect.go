package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scanium/barscan/internal/barcode"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// FileResult is the detection outcome for one input image.
type FileResult struct {
	File     string                `json:"file"`
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	Barcodes []barcode.BarcodeRect `json:"barcodes"`
}

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect [image...]",
	Short: "Locate barcodes in image files",
	Long: `Locate linear barcodes in one or more image files.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  barscan detect photo.jpg
  barscan detect *.png --format text
  barscan detect scan.jpg --extract-dir crops/ --overlay-dir debug/`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		// Config validation has already rejected unknown formats.
		cfg := GetConfig()
		format := cfg.Output.Format

		opts := cfg.Detection.DetectorOptions()
		results := make([]FileResult, 0, len(args))
		for _, path := range args {
			res, err := detectFile(path, opts, cfg.Output.OverlayDir, cfg.Output.ExtractDir, cfg.Output.DebugSeed)
			if err != nil {
				return err
			}
			results = append(results, *res)
		}

		return writeResults(cmd, results, format)
	},
}

func detectFile(path string, opts barcode.Options, overlayDir, extractDir string, seed int64) (*FileResult, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	var overlay image.Image
	if overlayDir != "" {
		opts.Debug = true
		opts.DebugSeed = seed
		opts.DebugSink = func(o image.Image) { overlay = o }
	}

	rects := barcode.FindBarcodes(img, opts)

	if overlayDir != "" && overlay != nil {
		if err := saveOverlay(overlay, path, overlayDir); err != nil {
			return nil, err
		}
	}
	if extractDir != "" {
		if err := saveCrops(img, rects, path, extractDir); err != nil {
			return nil, err
		}
	}

	b := img.Bounds()
	return &FileResult{
		File:     path,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Barcodes: rects,
	}, nil
}

func saveOverlay(overlay image.Image, srcPath, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create overlay directory: %w", err)
	}
	out := filepath.Join(dir, baseName(srcPath)+"_overlay.png")
	if err := imaging.Save(overlay, out); err != nil {
		return fmt.Errorf("failed to save overlay %s: %w", out, err)
	}
	return nil
}

func saveCrops(img image.Image, rects []barcode.BarcodeRect, srcPath, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create extract directory: %w", err)
	}
	for i, r := range rects {
		out := filepath.Join(dir, fmt.Sprintf("%s_barcode_%d.png", baseName(srcPath), i))
		if err := imaging.Save(r.Extract(img), out); err != nil {
			return fmt.Errorf("failed to save crop %s: %w", out, err)
		}
	}
	return nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeResults(cmd *cobra.Command, results []FileResult, format string) error {
	w := cmd.OutOrStdout()
	if format == outputFormatText {
		for _, res := range results {
			fmt.Fprintf(w, "%s: %d barcode(s)\n", res.File, len(res.Barcodes))
			for _, r := range res.Barcodes {
				fmt.Fprintf(w, "  center=(%.1f, %.1f) size=%dx%d theta=%.1f\n",
					r.CenterX, r.CenterY, r.Width, r.Height, r.Theta)
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringP("format", "f", outputFormatJSON, "output format (json, text)")
	detectCmd.Flags().String("overlay-dir", "", "directory for debug overlay images")
	detectCmd.Flags().String("extract-dir", "", "directory for de-rotated barcode crops")
	detectCmd.Flags().Int64("seed", 0, "seed for the overlay color assignment")

	_ = viper.BindPFlag("output.format", detectCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.overlay_dir", detectCmd.Flags().Lookup("overlay-dir"))
	_ = viper.BindPFlag("output.extract_dir", detectCmd.Flags().Lookup("extract-dir"))
	_ = viper.BindPFlag("output.debug_seed", detectCmd.Flags().Lookup("seed"))
}
