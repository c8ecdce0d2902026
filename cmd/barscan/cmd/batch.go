package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanium/barscan/internal/batch"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [path...]",
	Short: "Locate barcodes in many images at once",
	Long: `Process whole directories of images with a pool of parallel workers.

Examples:
  barscan batch scans/
  barscan batch scans/ --recursive --workers 8
  barscan batch scans/ --include "*.png" --continue-on-error`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input paths provided")
		}

		workers, _ := cmd.Flags().GetInt("workers")
		recursive, _ := cmd.Flags().GetBool("recursive")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		continueOnError, _ := cmd.Flags().GetBool("continue-on-error")

		cfg := GetConfig()
		res, err := batch.Process(args, batch.Config{
			Workers:         workers,
			Recursive:       recursive,
			IncludePatterns: include,
			ExcludePatterns: exclude,
			ContinueOnError: continueOnError,
			Detection:       cfg.Detection.DetectorOptions(),
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "include only files matching these patterns")
	batchCmd.Flags().StringSlice("exclude", nil, "exclude files matching these patterns")
	batchCmd.Flags().Bool("continue-on-error", false, "report per-file failures instead of aborting")
}
