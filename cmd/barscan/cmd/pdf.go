package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanium/barscan/internal/pdfscan"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf [file...]",
	Short: "Locate barcodes in the images embedded in PDF files",
	Long: `Extract the images embedded in PDF documents and locate linear barcodes
on each page.

Examples:
  barscan pdf invoices.pdf
  barscan pdf scan.pdf --pages 1-5
  barscan pdf batch1.pdf batch2.pdf --pages 1,3`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		pages, _ := cmd.Flags().GetString("pages")
		cfg := GetConfig()
		opts := cfg.Detection.DetectorOptions()

		results := make([]*pdfscan.Result, 0, len(args))
		for _, path := range args {
			res, err := pdfscan.ScanFile(path, pages, opts)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", path, err)
			}
			results = append(results, res)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().StringP("pages", "p", "", "page selection, e.g. \"1,3,5-7\" (default all pages)")
}
