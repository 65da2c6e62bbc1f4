// =============================================================================
// Coupon Settlement System - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (settle)
//   ├── processCmd (settle process)
//   └── versionCmd (settle version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "settle",
	Short: "Coupon Settlement System - per-vendor settlement statements from redemption spreadsheets",
	Long: `Coupon Settlement System ingests an XLSX export of coupon redemptions for
one of two video service lines (wedding or first-birthday) and produces one
settlement statement per coupon code.

Pipeline:
  1. Detect the file schema from its columns
  2. Filter redemptions to the settlement month, dropping excluded coupons
  3. Group redemptions into distinct customers per coupon code
  4. Flag likely-duplicate customers by fuzzy name match
  5. Render a settlement message with the total owed per vendor

Example Usage:
  settle process --month 2025-08                  # newest file in the input dir
  settle process --month 2025-08 --file data.xlsx # a specific file
  settle process --month 2025-08 --save           # also record to the ledger`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Print full settlement messages and per-record detail",
	)
}
