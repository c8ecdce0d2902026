// Package pdfscan runs barcode detection over the images embedded in PDF
// documents. Scanned documents typically carry one full-page image per page;
// each extracted image is fed through the detection pipeline and the results
// are grouped by page.
package pdfscan

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/scanium/barscan/internal/barcode"
)

// PageResult holds the barcodes found on one PDF page.
type PageResult struct {
	Page     int                   `json:"page"`
	Images   int                   `json:"images"`
	Barcodes []barcode.BarcodeRect `json:"barcodes"`
}

// Result is the outcome of scanning a whole document.
type Result struct {
	File  string       `json:"file"`
	Pages []PageResult `json:"pages"`
	Total int          `json:"total"`
}

// ScanFile extracts the images of the given PDF and runs barcode detection
// on each of them. pageRange follows the "1,3,5-7" syntax; empty means all
// pages. Pages without embedded images are omitted from the result.
func ScanFile(filename, pageRange string, opts barcode.Options) (*Result, error) {
	pages, err := ExtractImages(filename, pageRange)
	if err != nil {
		return nil, err
	}

	result := &Result{File: filename}
	for _, page := range sortedPages(pages) {
		pr := PageResult{Page: page, Images: len(pages[page]), Barcodes: []barcode.BarcodeRect{}}
		for _, img := range pages[page] {
			pr.Barcodes = append(pr.Barcodes, barcode.FindBarcodes(img, opts)...)
		}
		result.Total += len(pr.Barcodes)
		result.Pages = append(result.Pages, pr)
	}
	return result, nil
}

// ExtractImages pulls the embedded images out of a PDF, grouped by page
// number.
func ExtractImages(filename, pageRange string) (map[int][]image.Image, error) {
	pageNumbers, err := parsePageRange(pageRange)
	if err != nil {
		return nil, fmt.Errorf("invalid page range %q: %w", pageRange, err)
	}

	tempDir, err := os.MkdirTemp("", "barscan-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var pageStrings []string
	for _, n := range pageNumbers {
		pageStrings = append(pageStrings, strconv.Itoa(n))
	}

	if err := api.ExtractImagesFile(filename, tempDir, pageStrings, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	images, err := collectExtractedImages(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to process extracted images: %w", err)
	}
	return images, nil
}

func sortedPages(pages map[int][]image.Image) []int {
	out := make([]int, 0, len(pages))
	for p := range pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// collectExtractedImages walks dir and groups the images pdfcpu wrote by
// page number. Filenames follow the pdfcpu format: <base>_page_<num>_<name>.<ext>.
func collectExtractedImages(dir string) (map[int][]image.Image, error) {
	result := make(map[int][]image.Image)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		pageNum, err := parsePageFromFilename(info.Name())
		if err != nil {
			return nil // not a page image
		}
		img, err := loadImageFile(path)
		if err != nil {
			return nil // skip unreadable images
		}
		result[pageNum] = append(result[pageNum], img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path) //nolint:gosec // G304: reading extracted temp files
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	return img, err
}

// parsePageFromFilename extracts the page number from a pdfcpu extracted
// image filename.
func parsePageFromFilename(filename string) (int, error) {
	parts := strings.Split(filename, "_")
	for i, part := range parts {
		if part == "page" && i+1 < len(parts) {
			num := strings.SplitN(parts[i+1], ".", 2)[0]
			if pageNum, err := strconv.Atoi(num); err == nil {
				return pageNum, nil
			}
		}
	}
	return 0, errors.New("no page number in filename")
}

// parsePageRange parses a page selection like "3", "1-5" or "1,3,5-7".
// An empty string selects all pages.
func parsePageRange(pageRange string) ([]int, error) {
	if pageRange == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(pageRange, ",") {
		tokenPages, err := parseRangeToken(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pages = append(pages, tokenPages...)
	}
	return pages, nil
}

func parseRangeToken(part string) ([]int, error) {
	if strings.Contains(part, "-") {
		rangeParts := strings.Split(part, "-")
		if len(rangeParts) != 2 {
			return nil, fmt.Errorf("invalid range format: %s", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid start page: %s", rangeParts[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid end page: %s", rangeParts[1])
		}
		if start > end {
			return nil, fmt.Errorf("start page %d greater than end page %d", start, end)
		}
		out := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
		return out, nil
	}
	page, err := strconv.Atoi(part)
	if err != nil {
		return nil, fmt.Errorf("invalid page number: %s", part)
	}
	return []int{page}, nil
}
