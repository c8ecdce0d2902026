// Package batch runs barcode detection over many image files at once, with
// directory discovery and a configurable worker pool.
package batch

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/scanium/barscan/internal/barcode"
)

// Config controls a batch run.
type Config struct {
	// Workers is the number of concurrent detection workers; values below 1
	// default to the number of CPUs.
	Workers int
	// Recursive descends into subdirectories of directory arguments.
	Recursive bool
	// IncludePatterns and ExcludePatterns filter discovered files by base
	// name, e.g. "*.png". Exclusion wins over inclusion.
	IncludePatterns []string
	ExcludePatterns []string
	// ContinueOnError keeps processing after a file fails; the failure is
	// reported in the result instead of aborting the run.
	ContinueOnError bool
	// Detection configures the pipeline applied to every file.
	Detection barcode.Options
}

// FileResult is the outcome for one file.
type FileResult struct {
	File     string                `json:"file"`
	Barcodes []barcode.BarcodeRect `json:"barcodes"`
	Error    string                `json:"error,omitempty"`
}

// Result summarizes a batch run.
type Result struct {
	Files       []FileResult  `json:"files"`
	Total       int           `json:"total"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration_ns"`
	WorkerCount int           `json:"workers"`
}

// Process discovers the image files named by paths (files or directories)
// and runs barcode detection on each, fanning the work out over a pool of
// workers. Results keep the discovery order regardless of which worker
// finished first.
func Process(paths []string, cfg Config) (*Result, error) {
	files, err := discoverImageFiles(paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFile(files[i], cfg.Detection)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := &Result{
		Files:       results,
		Duration:    time.Since(start),
		WorkerCount: workers,
	}
	for _, fr := range results {
		if fr.Error != "" {
			res.Failed++
			continue
		}
		res.Total += len(fr.Barcodes)
	}

	if res.Failed > 0 && !cfg.ContinueOnError {
		for _, fr := range results {
			if fr.Error != "" {
				return nil, fmt.Errorf("processing %s: %s", fr.File, fr.Error)
			}
		}
	}
	return res, nil
}

func processFile(path string, opts barcode.Options) FileResult {
	img, err := imaging.Open(path)
	if err != nil {
		return FileResult{File: path, Error: err.Error()}
	}
	return FileResult{File: path, Barcodes: barcode.FindBarcodes(img, opts)}
}
