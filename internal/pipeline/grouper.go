// =============================================================================
// Coupon Settlement System - Customer Grouper
// =============================================================================
//
// This module collapses filtered records into distinct customers. It is a
// stable group-by with set-union aggregation: records are grouped by coupon
// code, then within a group by the schema's composite identity key; a
// customer is created on the first record of its identity and every record
// contributes its video-type label to that customer's set. Once created, a
// customer is never merged with another.
//
// =============================================================================

package pipeline

import (
	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// Group collapses filtered records into coupon-code groups of distinct
// customers. Customer order within a group follows the first appearance of
// each identity; coupon-code order follows first appearance in the input.
//
// couponSelection is the operator's coupon-level selection map: records
// whose coupon code maps to false are dropped before grouping. A nil or
// empty map selects every code.
func Group(filtered []types.FilteredRecord, acc classifier.Accessor, couponSelection map[string]bool) types.GroupedData {
	grouped := types.NewGroupedData()

	// customerIndex locates a customer within its group by identity key.
	customerIndex := make(map[string]map[string]int)

	for _, record := range filtered {
		code := acc.CouponCode(record.RawRecord)
		if len(couponSelection) > 0 {
			if selected, ok := couponSelection[code]; ok && !selected {
				continue
			}
		}

		group := grouped.Get(code)
		if group == nil {
			group = &types.CouponGroup{CouponCode: code}
			grouped.Add(group)
			customerIndex[code] = make(map[string]int)
		}

		key := acc.IdentityKey(record.RawRecord)
		idx, seen := customerIndex[code][key]
		if !seen {
			idx = len(group.Customers)
			group.Customers = append(group.Customers, acc.NewCustomer(record.RawRecord))
			customerIndex[code][key] = idx
		}

		group.Customers[idx].AddVideoType(acc.VideoType(record.RawRecord))
	}

	return grouped
}
