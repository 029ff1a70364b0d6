package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/f-klubben/mpdinero/internal/batch"
	"github.com/f-klubben/mpdinero/internal/calendar"
	"github.com/f-klubben/mpdinero/internal/config"
	"github.com/f-klubben/mpdinero/internal/ledger"
	"github.com/f-klubben/mpdinero/internal/mpcsv"
	"github.com/f-klubben/mpdinero/internal/receipt"
	"github.com/f-klubben/mpdinero/internal/register"
)

// defaultConfigFile is looked for in the working directory when no
// --config flag is given.
const defaultConfigFile = "mpdinero.yaml"

type convertOptions struct {
	infile        string
	appendixStart int
	outDir        string
	myshopNumber  string
	configPath    string
}

func newConvertCommand() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <infile> <appendix-start>",
		Short: "Convert a MyShop export to a Dinero CSV and appendix PDFs",
		Long: `Reads a MobilePay MyShop transaction export, groups the transactions
into settlement batches, and writes a Dinero journal-import CSV plus
one appendix PDF per batch. Appendix numbers run contiguously from
<appendix-start>; the next free number is printed for the next run.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.infile = args[0]

			start, err := strconv.Atoi(args[1])
			if err != nil || start < 1 {
				return fmt.Errorf("appendix-start must be a positive integer, got %q", args[1])
			}
			opts.appendixStart = start

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if opts.myshopNumber != "" {
				cfg.MyShop.Number = opts.myshopNumber
			}

			return runConvert(opts, cfg, receipt.NewPDFRenderer(cfg))
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "directory to write the CSV and receipt directory into")
	cmd.Flags().StringVarP(&opts.myshopNumber, "myshop-number", "n", "", "MyShop number to convert (overrides config)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./"+defaultConfigFile+")")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// runConvert is the whole pipeline: read and classify, aggregate,
// write the ledger, render receipts, report. Row-level problems are
// warned about and skipped; file-level problems abort before any
// output exists.
func runConvert(opts convertOptions, cfg *config.Config, renderer receipt.Renderer) error {
	res, err := mpcsv.ReadFile(opts.infile, cfg.MyShop.Number)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.infile, err)
	}

	for _, rowErr := range res.Errors {
		slog.Warn("skipping unparseable row", "line", rowErr.Line, "reason", rowErr.Reason)
	}
	if res.Filtered > 0 {
		slog.Info("skipped rows for other MyShop numbers", "count", res.Filtered)
	}

	detector := register.NewDetector(cfg.Registration.Fee, cfg.Registration.MaxEditDistance)
	txns := detector.Annotate(res.Transactions)

	agg := batch.Aggregate(txns, opts.appendixStart, calendar.Denmark{})

	rangeName := batch.AppendixRange(opts.appendixStart, len(agg.Batches))
	csvPath := filepath.Join(opts.outDir, rangeName+".csv")
	if err := writeLedger(csvPath, agg, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d batches)\n", csvPath, len(agg.Batches))

	receiptDir := filepath.Join(opts.outDir, rangeName)
	rendered, failed, err := renderReceipts(receiptDir, agg, renderer)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d receipts in %s%c\n", rendered, receiptDir, os.PathSeparator)

	printSummary(res, failed, agg.NextAppendix)
	return nil
}

// writeLedger writes the Dinero CSV, removing the file again if the
// write fails so no truncated output survives.
func writeLedger(path string, agg batch.Result, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger CSV: %w", err)
	}

	if err := ledger.Write(f, agg.Batches, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing ledger CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing ledger CSV: %w", err)
	}
	return nil
}

// renderReceipts writes one PDF per batch. A failed batch is skipped
// with a warning; the ledger already written stays valid.
func renderReceipts(dir string, agg batch.Result, renderer receipt.Renderer) (rendered, failed int, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("creating receipt dir: %w", err)
	}

	for _, b := range agg.Batches {
		path := receipt.Filename(dir, b.Appendix)
		if err := renderer.Render(b, path); err != nil {
			slog.Warn("skipping receipt", "appendix", b.Appendix, "error", err)
			failed++
			continue
		}
		rendered++
	}
	return rendered, failed, nil
}

func printSummary(res mpcsv.Result, failedReceipts, nextAppendix int) {
	fmt.Printf("Handled %d transactions", len(res.Transactions))
	if len(res.Errors) > 0 {
		fmt.Printf(", skipped %d unparseable rows", len(res.Errors))
	}
	if failedReceipts > 0 {
		fmt.Printf(", %d receipts failed", failedReceipts)
	}
	fmt.Println()
	fmt.Printf("Next appendix number: %d\n", nextAppendix)
}
