package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

func groupOf(code string, babyNames ...string) types.GroupedData {
	grouped := types.NewGroupedData()
	group := &types.CouponGroup{CouponCode: code}
	for _, name := range babyNames {
		group.Customers = append(group.Customers, types.Customer{BabyName: name})
	}
	grouped.Add(group)
	return grouped
}

func detect(grouped types.GroupedData) (types.GroupedData, []types.DuplicatePair) {
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)
	return DetectDuplicates(grouped, acc, DefaultStrippablePrefixes)
}

func TestDetectDuplicates_ExactNameMatch(t *testing.T) {
	_, pairs := detect(groupOf("PARTY01", "민수", "민수"))

	require.Len(t, pairs, 1)
	assert.Equal(t, types.ExactNameMatch, pairs[0].Reason)
	assert.Equal(t, "PARTY01_0", pairs[0].Customer1.ID)
	assert.Equal(t, "PARTY01_1", pairs[0].Customer2.ID)
}

func TestDetectDuplicates_NormalizedNameMatch(t *testing.T) {
	_, pairs := detect(groupOf("PARTY01", "김민수", "민수"))

	require.Len(t, pairs, 1)
	assert.Equal(t, types.NormalizedNameMatch, pairs[0].Reason)
	assert.Equal(t, "김민수", pairs[0].Customer1.BabyName)
	assert.Equal(t, "민수", pairs[0].Customer2.BabyName)
}

func TestDetectDuplicates_StripsOnlyOneLeadingCharacter(t *testing.T) {
	// "김이민수" strips to "이민수", not to "민수": never more than one rune.
	_, pairs := detect(groupOf("PARTY01", "김이민수", "민수"))
	assert.Empty(t, pairs)

	// Different strippable surnames over the same given name do match.
	_, pairs = detect(groupOf("PARTY01", "김민수", "이민수"))
	require.Len(t, pairs, 1)
	assert.Equal(t, types.NormalizedNameMatch, pairs[0].Reason)
}

func TestDetectDuplicates_NoStripWithoutPrefix(t *testing.T) {
	_, pairs := detect(groupOf("PARTY01", "하은", "수하은"))
	assert.Empty(t, pairs)
}

func TestDetectDuplicates_IDAssignment(t *testing.T) {
	final, _ := detect(groupOf("PARTY01", "하은", "지호", "서연"))

	group := final.Get("PARTY01")
	require.Len(t, group.Customers, 3)
	assert.Equal(t, "PARTY01_0", group.Customers[0].ID)
	assert.Equal(t, "PARTY01_1", group.Customers[1].ID)
	assert.Equal(t, "PARTY01_2", group.Customers[2].ID)
}

func TestDetectDuplicates_OnePairPerLaterCustomer(t *testing.T) {
	// The third customer matches both earlier ones but the scan stops at the
	// first hit, so only one pair is recorded for it.
	_, pairs := detect(groupOf("PARTY01", "김민수", "박민수", "민수"))

	require.Len(t, pairs, 2)

	// 박민수 links back to 김민수 (the earliest entry in scan order).
	assert.Equal(t, "김민수", pairs[0].Customer1.BabyName)
	assert.Equal(t, "박민수", pairs[0].Customer2.BabyName)

	// 민수 also links back to 김민수, not to 박민수.
	assert.Equal(t, "김민수", pairs[1].Customer1.BabyName)
	assert.Equal(t, "민수", pairs[1].Customer2.BabyName)
}

func TestDetectDuplicates_EqualRawNamesChainPairwise(t *testing.T) {
	// Re-recording an identical raw name points the entry at the newest
	// customer, so an exact-name chain links each customer to its
	// predecessor.
	_, pairs := detect(groupOf("PARTY01", "민수", "민수", "민수"))

	require.Len(t, pairs, 2)
	assert.Equal(t, "PARTY01_0", pairs[0].Customer1.ID)
	assert.Equal(t, "PARTY01_1", pairs[0].Customer2.ID)
	assert.Equal(t, "PARTY01_1", pairs[1].Customer1.ID)
	assert.Equal(t, "PARTY01_2", pairs[1].Customer2.ID)
}

func TestDetectDuplicates_EmptyNamesPair(t *testing.T) {
	// Two empty primary names spuriously match; accepted pipeline behavior.
	_, pairs := detect(groupOf("PARTY01", "", ""))

	require.Len(t, pairs, 1)
	assert.Equal(t, types.ExactNameMatch, pairs[0].Reason)
}

func TestDetectDuplicates_ScopedToCouponGroup(t *testing.T) {
	grouped := types.NewGroupedData()
	grouped.Add(&types.CouponGroup{CouponCode: "PARTY01", Customers: []types.Customer{{BabyName: "민수"}}})
	grouped.Add(&types.CouponGroup{CouponCode: "PARTY02", Customers: []types.Customer{{BabyName: "민수"}}})

	final, pairs := detect(grouped)

	assert.Empty(t, pairs)
	assert.Equal(t, []string{"PARTY01", "PARTY02"}, final.Codes)
}

func TestDetectDuplicates_DropsEmptyGroups(t *testing.T) {
	grouped := types.NewGroupedData()
	grouped.Add(&types.CouponGroup{CouponCode: "EMPTY"})
	grouped.Add(&types.CouponGroup{CouponCode: "PARTY01", Customers: []types.Customer{{BabyName: "하은"}}})

	final, _ := detect(grouped)

	assert.Equal(t, []string{"PARTY01"}, final.Codes)
	assert.Nil(t, final.Get("EMPTY"))
}

func TestStripSurnamePrefix(t *testing.T) {
	assert.Equal(t, "민수", stripSurnamePrefix("김민수", DefaultStrippablePrefixes))
	assert.Equal(t, "민수", stripSurnamePrefix("민수", DefaultStrippablePrefixes))
	assert.Equal(t, "", stripSurnamePrefix("", DefaultStrippablePrefixes))
	assert.Equal(t, "수진", stripSurnamePrefix("임수진", DefaultStrippablePrefixes))
}
