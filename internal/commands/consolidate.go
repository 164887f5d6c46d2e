package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bankmerge-dev/bankmerge/internal/accounts"
	"github.com/bankmerge-dev/bankmerge/internal/config"
	"github.com/bankmerge-dev/bankmerge/internal/consolidate"
	"github.com/bankmerge-dev/bankmerge/internal/importer"
	"github.com/bankmerge-dev/bankmerge/internal/report"
	"github.com/bankmerge-dev/bankmerge/internal/runlog"
)

func newConsolidateCommand() *cobra.Command {
	var bank string
	var configPath string
	var statementsDir string
	var outDir string

	cmd := &cobra.Command{
		Use:   "consolidate [files...]",
		Short: "Parse, merge, and classify bank statement files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if bank == "" {
				bank = cfg.DefaultBank
			}
			if bank == "" {
				return fmt.Errorf("no bank format given: pass --bank or set default_bank in the config")
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			files, err := collectFiles(args, statementsDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no statement files to process")
			}

			return runConsolidate(cmd, cfg, bank, outDir, files)
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank format (hdfc or axis)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&statementsDir, "statements-dir", "", "directory to scan for statement files")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for output artifacts")

	return cmd
}

func runConsolidate(cmd *cobra.Command, cfg *config.Config, bank, outDir string, files []consolidate.InputFile) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	svc := consolidate.NewService(importer.DefaultRegistry(), accounts.NewMapping(cfg.AccountMapping), logger)

	res, err := svc.Consolidate(bank, files)
	if err != nil {
		return err
	}
	if len(res.Transactions) == 0 {
		return fmt.Errorf("no transactions parsed from %d file(s)", len(files))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tablePath := filepath.Join(outDir, cfg.Output.TableFile)
	tableFile, err := os.Create(tablePath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer tableFile.Close()
	if err := report.WriteTransactions(tableFile, res.Transactions); err != nil {
		return fmt.Errorf("writing consolidated table: %w", err)
	}

	summaryPath := filepath.Join(outDir, cfg.Output.SummaryFile)
	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer summaryFile.Close()
	if err := report.Render(summaryFile, res.Summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := runlog.Append(outDir, runlog.Entry{
		Timestamp:    res.Summary.GeneratedAt,
		RunID:        res.RunID.String(),
		Bank:         bank,
		Files:        len(files),
		Failed:       len(res.FileErrors),
		Transactions: len(res.Transactions),
		Duplicates:   res.Duplicates,
		OutputFile:   tablePath,
	}); err != nil {
		return fmt.Errorf("appending run log: %w", err)
	}

	printRecap(cmd, res, tablePath, summaryPath)
	return nil
}

func printRecap(cmd *cobra.Command, res *consolidate.Result, tablePath, summaryPath string) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Consolidated %d transactions across %d account(s)\n",
		len(res.Transactions), len(res.Summary.Accounts))
	fmt.Fprintf(out, "Duplicates dropped: %d\n", res.Duplicates)
	fmt.Fprintf(out, "Classification: %d unique, %d inter-bank, %d reversed\n",
		res.Summary.UniqueCount, res.Summary.InterBankCount, res.Summary.ReversedCount)

	profit := res.Summary.NetProfit
	switch {
	case profit.IsPositive():
		color.New(color.FgGreen).Fprintf(out, "True business profit: %s\n", profit.StringFixed(2))
	case profit.IsNegative():
		color.New(color.FgRed).Fprintf(out, "True business loss: %s\n", profit.Abs().StringFixed(2))
	default:
		fmt.Fprintln(out, "True business performance: break-even")
	}

	for _, fe := range res.FileErrors {
		color.New(color.FgYellow).Fprintf(out, "skipped %s: %v\n", fe.Name, fe.Err)
	}

	fmt.Fprintf(out, "Table: %s\nSummary: %s\n", tablePath, summaryPath)
}

// collectFiles reads explicit file arguments plus any scanned directory
// into memory up front.
func collectFiles(args []string, statementsDir string) ([]consolidate.InputFile, error) {
	var files []consolidate.InputFile

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, consolidate.InputFile{Name: filepath.Base(path), Data: data})
	}

	if statementsDir != "" {
		found, err := importer.Scan(statementsDir)
		if err != nil {
			return nil, err
		}
		for _, fi := range found {
			data, err := os.ReadFile(fi.Path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", fi.Path, err)
			}
			files = append(files, consolidate.InputFile{Name: fi.Name, Data: data})
		}
	}

	return files, nil
}
