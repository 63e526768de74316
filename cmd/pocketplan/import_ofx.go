package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pocketplan/pocketplan/internal/cli"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/ofx"
	"github.com/spf13/cobra"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import financial transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import single file
  pocketplan import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import multiple files
  pocketplan import-ofx ~/Downloads/chase_*.qfx

  # Import from multiple directories
  pocketplan import-ofx ~/Downloads/Chase/*.qfx ~/Downloads/Ally/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	allFiles, err := expandFileArgs(args)
	if err != nil {
		return err
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	fmt.Println(cli.FormatTitle("Importing OFX files"))

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var allTransactions []model.Transaction
	fileResults := make(map[string]int)

	bar := cli.NewProgressBar(nil, len(allFiles), "Parsing files...")
	for _, filePath := range allFiles {
		transactions, parseErr := parseOFXFile(ctx, parser, filePath)
		if parseErr != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", parseErr)
			continue
		}

		added := 0
		for _, tx := range transactions {
			if !seen[tx.Hash] {
				seen[tx.Hash] = true
				allTransactions = append(allTransactions, tx)
				added++
			}
		}
		fileResults[filepath.Base(filePath)] = added
		if barErr := bar.Add(1); barErr != nil {
			slog.Warn("Failed to update progress bar", "error", barErr)
		}
	}

	if len(allTransactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file"))
		return nil
	}

	content := ""
	for file, count := range fileResults {
		content += fmt.Sprintf("%s: %d transactions\n", file, count)
	}
	content += fmt.Sprintf("\nTotal unique: %d", len(allTransactions))
	fmt.Println(cli.RenderBox("File Import Summary", content))

	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run mode - not saving to database"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	if err := store.SaveTransactions(ctx, allTransactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Import complete!"))
	return nil
}

// expandFileArgs resolves glob patterns, keeping bare paths that exist.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	return files, nil
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, filePath string) ([]model.Transaction, error) {
	f, err := os.Open(filePath) //nolint:gosec // user-supplied import path
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "file", filePath, "error", closeErr)
		}
	}()

	return parser.ParseFile(ctx, f)
}
