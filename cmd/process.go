// =============================================================================
// Coupon Settlement System - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full settlement
// pipeline over one redemption spreadsheet.
//
// COMMAND USAGE:
//   settle process --month YYYY-MM [flags]
//
// FLAGS:
//   --month            : Settlement month, e.g. 2025-08 (required)
//   --file             : Spreadsheet to process (default: newest *.xlsx in input dir)
//   --skip-coupon      : Coupon code to leave out of settlement (repeatable)
//   --keep-duplicates  : Keep flagged duplicate customers selected
//   --show-duplicates  : Print every flagged duplicate pair
//   --dry-run          : Skip writing the report and archiving the input
//   --save             : Record statements to the settlement ledger
//
// PIPELINE:
//   1. Load configuration
//   2. Parse the spreadsheet into records
//   3. Classify the file schema
//   4. Filter to the settlement month
//   5. Group into distinct customers per coupon code
//   6. Detect duplicates and apply the selection defaults
//   7. Compose one statement per coupon code
//   8. Export the report, archive the input, optionally persist
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/composer"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/config"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/pipeline"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/store"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/xlsxparser"
	"github.com/pastelceo-blip/coupon-settlement-system/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// monthFlag is the settlement month in YYYY-MM form.
var monthFlag string

// fileFlag is the spreadsheet to process; empty means discover the newest.
var fileFlag string

// skipCoupons are coupon codes the operator excludes from this run.
var skipCoupons []string

// keepDuplicates keeps flagged duplicate customers selected.
var keepDuplicates bool

// showDuplicates prints every flagged pair.
var showDuplicates bool

// dryRun skips writing the report and archiving the input.
var dryRun bool

// save records the statements to the settlement ledger.
var save bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the settlement pipeline over a redemption spreadsheet",
	Long: `The process command reads a redemption spreadsheet, detects whether it is a
wedding or first-birthday export, filters redemptions to the settlement
month, collapses them into distinct customers per coupon code, flags likely
duplicates (the later of a flagged pair is left out by default), and renders
one settlement statement per coupon code.

The statements are printed, exported as a text report into the output
directory, and — with --save — recorded in the settlement ledger one at a
time. A failed ledger write for one vendor never cancels the others; the
command finishes with a success/failure summary.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&monthFlag, "month", "", "Settlement month, YYYY-MM (required)")
	processCmd.Flags().StringVar(&fileFlag, "file", "", "Spreadsheet to process (default: newest *.xlsx in the input directory)")
	processCmd.Flags().StringArrayVar(&skipCoupons, "skip-coupon", nil, "Coupon code to leave out of settlement (repeatable)")
	processCmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", false, "Keep flagged duplicate customers selected")
	processCmd.Flags().BoolVar(&showDuplicates, "show-duplicates", false, "Print every flagged duplicate pair")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip writing the report and archiving the input")
	processCmd.Flags().BoolVar(&save, "save", false, "Record statements to the settlement ledger")

	processCmd.MarkFlagRequired("month")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the settlement pipeline.
func runProcess(ctx context.Context) error {
	// =========================================================================
	// STEP 1: CONFIGURATION AND INPUT
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	year, month, err := parseMonth(monthFlag)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	inputFile := fileFlag
	if inputFile == "" {
		files, err := fm.DiscoverInputFiles("")
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no spreadsheet found in %s; pass one with --file", cfg.InputDir)
		}
		inputFile = files[0]
	}

	fmt.Println("=== Coupon Settlement ===")
	fmt.Printf("File:  %s\n", inputFile)
	fmt.Printf("Month: %s\n", monthFlag)

	// =========================================================================
	// STEP 2: PARSE AND CLASSIFY
	// =========================================================================

	records, err := xlsxparser.Parse(inputFile)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d record(s)\n", len(records))

	schema := classifier.Detect(records)
	if schema == types.SchemaUnknown {
		return fmt.Errorf("could not detect the file schema (neither wedding nor first-birthday columns found)")
	}
	fmt.Printf("Schema: %s\n", schema)

	acc := classifier.AccessorFor(schema)

	// =========================================================================
	// STEP 3: FILTER, GROUP, DETECT DUPLICATES
	// =========================================================================

	filtered := pipeline.FilterByMonth(records, acc, year, month, cfg.ExclusionsFor(schema))
	fmt.Printf("In settlement month: %d record(s)\n", len(filtered))

	couponSelection := pipeline.DefaultCouponSelection(filtered, acc.CouponCode)
	for _, code := range skipCoupons {
		couponSelection[code] = false
	}

	grouped := pipeline.Group(filtered, acc, couponSelection)
	final, pairs := pipeline.DetectDuplicates(grouped, acc, cfg.StrippablePrefixes)
	fmt.Printf("Coupon codes: %d, distinct customers: %d, duplicate pairs: %d\n",
		len(final.Codes), final.TotalCustomers(), len(pairs))

	if showDuplicates || verbose {
		for _, pair := range pairs {
			fmt.Printf("  ! %s: %s <-> %s (%s)\n",
				pair.CouponCode, acc.FormatName(pair.Customer1), acc.FormatName(pair.Customer2), pair.Reason)
		}
	}

	selection := pipeline.DefaultSelection(final, pairs)
	if keepDuplicates {
		for _, pair := range pairs {
			selection[pair.Customer2.ID] = true
		}
	}

	// =========================================================================
	// STEP 4: COMPOSE STATEMENTS
	// =========================================================================

	comp := &composer.Composer{UnitPrice: cfg.UnitPrice, BankAccount: cfg.BankAccount}
	statements := comp.Compose(final, selection, acc)

	fmt.Printf("\n%d settlement statement(s):\n", len(statements))
	for _, stmt := range statements {
		fmt.Printf("  %s: %d건 / %s원\n", stmt.CouponCode, stmt.TotalCount, composer.FormatAmount(stmt.TotalAmount))
		if verbose {
			fmt.Println(indent(stmt.Message, "    "))
		}
	}

	// =========================================================================
	// STEP 5: EXPORT AND ARCHIVE
	// =========================================================================

	if !dryRun {
		report := composer.ExportText(statements, monthFlag)
		outputPath, err := fm.WriteOutput(cfg.OutputNameFormat, monthFlag, report)
		if err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", outputPath)

		archived, err := fm.ArchiveInputFile(inputFile)
		if err != nil {
			return err
		}
		if archived != inputFile {
			fmt.Printf("Input archived to %s\n", archived)
		}
	}

	// =========================================================================
	// STEP 6: RECORD TO THE LEDGER
	// =========================================================================

	if save {
		if err := saveStatements(ctx, cfg, statements, schema); err != nil {
			return err
		}
	}

	return nil
}

// saveStatements records the statements in the ledger and prints the
// aggregate outcome.
func saveStatements(ctx context.Context, cfg *config.Config, statements []types.SettlementStatement, schema types.Schema) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn is not configured; cannot save settlements")
	}

	ledger, err := store.OpenMySQL(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer ledger.Close()

	fmt.Println("\nRecording settlements...")
	recorder := &store.BatchRecorder{Store: ledger, ShowProgress: true}
	summary, err := recorder.RecordAll(ctx, statements, monthFlag, schema)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		fmt.Printf("Failed vendors: %s\n", strings.Join(summary.FailedVendors, ", "))
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// parseMonth splits "YYYY-MM" into year and month and validates the range.
func parseMonth(value string) (int, int, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --month %q: expected YYYY-MM", value)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return 0, 0, fmt.Errorf("invalid --month %q: bad year", value)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid --month %q: month must be 1-12", value)
	}

	return year, month, nil
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
