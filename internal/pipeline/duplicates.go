// =============================================================================
// Coupon Settlement System - Duplicate Detector
// =============================================================================
//
// This module flags likely-duplicate customers inside each coupon group.
// The matching key is deliberately fuzzier than the grouping identity: only
// the primary name is compared (groom name for Wedding, baby name for
// FirstBirthday), raw or with a single leading surname character stripped,
// precisely to catch near-duplicates that full identity matching would miss.
//
// SCAN CONTRACT:
//   - customers are processed in group order; each is compared against the
//     names recorded so far, in recording order, and the scan stops at the
//     first hit, so at most one pair is recorded per later customer;
//   - the customer's raw primary name is recorded afterwards regardless of
//     the outcome; re-recording an existing name keeps its scan position but
//     points it at the newest customer;
//   - an empty primary name normalizes to "" and can spuriously pair with
//     another empty-name customer; that is accepted behavior, not guarded.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"strings"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// DefaultStrippablePrefixes are the nine common surname characters removed
// from the front of a name before fuzzy comparison.
const DefaultStrippablePrefixes = "김이박최정강조윤장임"

// nameEntry is one row of the running name table: a raw primary name and
// the index of the customer it currently points at.
type nameEntry struct {
	name  string
	index int
}

// nameTable records raw primary names in first-insertion order. Setting an
// existing name updates its index but keeps its position in the scan order.
type nameTable struct {
	entries  []nameEntry
	position map[string]int
}

func newNameTable() *nameTable {
	return &nameTable{position: make(map[string]int)}
}

func (t *nameTable) set(name string, index int) {
	if pos, ok := t.position[name]; ok {
		t.entries[pos].index = index
		return
	}
	t.position[name] = len(t.entries)
	t.entries = append(t.entries, nameEntry{name: name, index: index})
}

// DetectDuplicates assigns each customer its group-local id
// "<couponCode>_<index>" and reports likely-duplicate pairs. The returned
// mapping contains only coupon codes with at least one customer; pair order
// follows processing order.
func DetectDuplicates(grouped types.GroupedData, acc classifier.Accessor, strippablePrefixes string) (types.GroupedData, []types.DuplicatePair) {
	final := types.NewGroupedData()
	var pairs []types.DuplicatePair

	for _, code := range grouped.Codes {
		group := grouped.Get(code)

		processed := make([]types.Customer, 0, len(group.Customers))
		names := newNameTable()

		for _, customer := range group.Customers {
			customer.ID = fmt.Sprintf("%s_%d", code, len(processed))

			primary := acc.PrimaryName(customer)
			normalized := stripSurnamePrefix(primary, strippablePrefixes)

			for _, entry := range names.entries {
				existingNormalized := stripSurnamePrefix(entry.name, strippablePrefixes)
				if primary != entry.name && normalized != existingNormalized {
					continue
				}

				reason := types.NormalizedNameMatch
				if primary == entry.name {
					reason = types.ExactNameMatch
				}
				pairs = append(pairs, types.DuplicatePair{
					CouponCode: code,
					Customer1:  processed[entry.index],
					Customer2:  customer,
					Reason:     reason,
				})
				break
			}

			names.set(primary, len(processed))
			processed = append(processed, customer)
		}

		if len(processed) > 0 {
			final.Add(&types.CouponGroup{CouponCode: code, Customers: processed})
		}
	}

	return final, pairs
}

// stripSurnamePrefix removes a single leading rune if it is one of the
// strippable surname characters. Names not starting with one are returned
// unchanged; never more than one rune is stripped.
func stripSurnamePrefix(name, strippablePrefixes string) string {
	for _, prefix := range strippablePrefixes {
		if strings.HasPrefix(name, string(prefix)) {
			return strings.TrimPrefix(name, string(prefix))
		}
	}
	return name
}
