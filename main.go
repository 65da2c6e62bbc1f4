// =============================================================================
// Coupon Settlement System - Main Entry Point
// =============================================================================
//
// USAGE:
//   settle process --month YYYY-MM   - Run the settlement pipeline
//   settle version                   - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : Core pipeline and persistence logic
//   - pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/pastelceo-blip/coupon-settlement-system/cmd"
)

func main() {
	cmd.Execute()
}
