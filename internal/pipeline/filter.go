// =============================================================================
// Coupon Settlement System - Period Filter
// =============================================================================
//
// This module selects the redemption records that belong to the requested
// settlement month. It is a data-quality filter, not a validator: records
// with absent, empty, or unparsable date fields are silently dropped,
// because a settlement run is expected to operate over noisy bulk exports.
//
// ACCEPTANCE TEST (all must hold):
//   a. the coupon-code field is present and not on the schema's exclusion
//      list;
//   b. the schema's date field is present and non-empty;
//   c. the normalized date falls inside the requested year-month.
//
// =============================================================================

package pipeline

import (
	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// FilterByMonth returns the records redeemed in the given year and month
// (1-12), excluding the given coupon codes. Relative record order is
// preserved and each surviving record is assigned a sequence id starting
// at 0.
func FilterByMonth(records []types.RawRecord, acc classifier.Accessor, year, month int, exclusions []string) []types.FilteredRecord {
	excluded := make(map[string]bool, len(exclusions))
	for _, code := range exclusions {
		excluded[code] = true
	}

	var filtered []types.FilteredRecord
	for _, record := range records {
		code := acc.CouponCode(record)
		if code == "" || excluded[code] {
			continue
		}

		date := acc.DateValue(record)
		if date == "" {
			continue
		}
		if !acc.DateInMonth(date, year, month) {
			continue
		}

		filtered = append(filtered, types.FilteredRecord{
			RawRecord: record,
			SeqID:     len(filtered),
		})
	}

	return filtered
}
