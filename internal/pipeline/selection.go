// =============================================================================
// Coupon Settlement System - Selection Defaults
// =============================================================================
//
// The pipeline only supplies the initial customer-level selection; the map
// is mutated by the operator before composition. Defaults: every customer is
// selected except the later member of each duplicate pair.
//
// =============================================================================

package pipeline

import (
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// DefaultSelection builds the initial selection state for the detected
// groups: all customers true, then each duplicate pair's second customer
// false.
func DefaultSelection(grouped types.GroupedData, pairs []types.DuplicatePair) types.SelectionState {
	selection := make(types.SelectionState, grouped.TotalCustomers())

	for _, code := range grouped.Codes {
		for _, customer := range grouped.Get(code).Customers {
			selection[customer.ID] = true
		}
	}

	for _, pair := range pairs {
		selection[pair.Customer2.ID] = false
	}

	return selection
}

// DefaultCouponSelection builds the initial coupon-level selection for the
// filtered records: every coupon code present is selected.
func DefaultCouponSelection(filtered []types.FilteredRecord, couponCode func(types.RawRecord) string) map[string]bool {
	selection := make(map[string]bool)
	for _, record := range filtered {
		if code := couponCode(record.RawRecord); code != "" {
			selection[code] = true
		}
	}
	return selection
}
