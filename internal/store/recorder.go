// =============================================================================
// Coupon Settlement System - Batch Recorder
// =============================================================================
//
// Persists a batch of settlement statements, one at a time. The contract:
// every statement is attempted exactly once, in order, with no retries and
// no early abort — a failed attempt for one vendor never cancels the
// remaining attempts. Outcomes are collected into a summary for reporting.
// This is a deliberate simplification for low-volume batch settlement.
//
// =============================================================================

package store

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// BatchRecorder records settlement statements sequentially against a Store.
type BatchRecorder struct {
	Store Store

	// ShowProgress renders a progress bar over the loop.
	ShowProgress bool
}

// RecordAll persists every statement and aggregates the outcomes.
//
// A nil store, or a store whose Ping fails, is total unavailability: a
// single upfront error is returned before any per-statement attempt. After
// that point individual failures are collected, never returned.
func (r *BatchRecorder) RecordAll(ctx context.Context, statements []types.SettlementStatement, month string, schema types.Schema) (types.RecordSummary, error) {
	var summary types.RecordSummary

	if r.Store == nil {
		return summary, fmt.Errorf("settlement store is not configured")
	}
	if err := r.Store.Ping(ctx); err != nil {
		return summary, fmt.Errorf("settlement store is unreachable: %w", err)
	}

	var bar *progressbar.ProgressBar
	if r.ShowProgress {
		bar = progressbar.Default(int64(len(statements)))
	}

	for _, stmt := range statements {
		doc := SettlementDocument{
			VendorCode:      stmt.CouponCode,
			TotalAmount:     stmt.TotalAmount,
			Message:         stmt.Message,
			SettlementMonth: month,
			ItemCount:       stmt.TotalCount,
			SchemaTag:       schema.String(),
			Status:          StatusUnpaid,
		}

		id, err := r.Store.RecordSettlement(ctx, doc)
		result := types.RecordResult{
			CouponCode: stmt.CouponCode,
			Success:    err == nil,
			DocumentID: id,
			Error:      err,
		}
		summary.Results = append(summary.Results, result)

		if err != nil {
			summary.Failed++
			summary.FailedVendors = append(summary.FailedVendors, stmt.CouponCode)
		} else {
			summary.Succeeded++
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	return summary, nil
}
