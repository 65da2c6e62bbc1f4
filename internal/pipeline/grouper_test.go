package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

func filteredBirthday(coupon, baby, date, category string) []types.RawRecord {
	r := birthdayRecord(coupon, baby, date)
	r[classifier.ColCategory] = category
	return []types.RawRecord{r}
}

func asFiltered(records []types.RawRecord) []types.FilteredRecord {
	filtered := make([]types.FilteredRecord, len(records))
	for i, r := range records {
		filtered[i] = types.FilteredRecord{RawRecord: r, SeqID: i}
	}
	return filtered
}

func TestGroup_MergesSameIdentity(t *testing.T) {
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)

	var records []types.RawRecord
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...)
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "인트로")...)
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...) // duplicate label
	records = append(records, filteredBirthday("PARTY01", "지호", "25-08-03", "메인")...)

	grouped := Group(asFiltered(records), acc, nil)

	require.Equal(t, []string{"PARTY01"}, grouped.Codes)
	group := grouped.Get("PARTY01")
	require.Len(t, group.Customers, 2)

	// Same customer, video types set-unioned with duplicates collapsed.
	assert.Equal(t, "하은", group.Customers[0].BabyName)
	assert.Equal(t, []string{"메인", "인트로"}, group.Customers[0].VideoTypes)
	assert.Equal(t, "지호", group.Customers[1].BabyName)
}

func TestGroup_SeparateCouponCodesSeparateCustomers(t *testing.T) {
	// The same person under two coupon codes is two unrelated customers.
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)

	var records []types.RawRecord
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...)
	records = append(records, filteredBirthday("PARTY02", "하은", "25-08-02", "메인")...)

	grouped := Group(asFiltered(records), acc, nil)

	assert.Equal(t, []string{"PARTY01", "PARTY02"}, grouped.Codes)
	assert.Len(t, grouped.Get("PARTY01").Customers, 1)
	assert.Len(t, grouped.Get("PARTY02").Customers, 1)
}

func TestGroup_OrderFollowsFirstAppearance(t *testing.T) {
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)

	var records []types.RawRecord
	records = append(records, filteredBirthday("PARTY02", "지호", "25-08-03", "메인")...)
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...)
	records = append(records, filteredBirthday("PARTY02", "서연", "25-08-10", "메인")...)

	grouped := Group(asFiltered(records), acc, nil)

	assert.Equal(t, []string{"PARTY02", "PARTY01"}, grouped.Codes)
	group := grouped.Get("PARTY02")
	require.Len(t, group.Customers, 2)
	assert.Equal(t, "지호", group.Customers[0].BabyName)
	assert.Equal(t, "서연", group.Customers[1].BabyName)
}

func TestGroup_CouponSelectionDropsUnselected(t *testing.T) {
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)

	var records []types.RawRecord
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...)
	records = append(records, filteredBirthday("PARTY02", "지호", "25-08-03", "메인")...)

	selection := map[string]bool{"PARTY01": true, "PARTY02": false}
	grouped := Group(asFiltered(records), acc, selection)

	assert.Equal(t, []string{"PARTY01"}, grouped.Codes)
	assert.Nil(t, grouped.Get("PARTY02"))
}

func TestGroup_Idempotent(t *testing.T) {
	// Grouping records reconstructed from an earlier grouping yields the
	// same groups.
	acc := classifier.AccessorFor(types.SchemaFirstBirthday)

	var records []types.RawRecord
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "메인")...)
	records = append(records, filteredBirthday("PARTY01", "하은", "25-08-02", "인트로")...)
	records = append(records, filteredBirthday("PARTY02", "지호", "25-08-03", "메인")...)

	first := Group(asFiltered(records), acc, nil)

	// Flatten back: one record per (customer, video type).
	var flattened []types.RawRecord
	for _, code := range first.Codes {
		for _, customer := range first.Get(code).Customers {
			for _, videoType := range customer.VideoTypes {
				flattened = append(flattened, types.RawRecord{
					classifier.ColCouponCode: code,
					classifier.ColBabyName:   customer.BabyName,
					classifier.ColPartyDate:  customer.EventDate,
					classifier.ColCategory:   videoType,
				})
			}
		}
	}

	second := Group(asFiltered(flattened), acc, nil)

	require.Equal(t, first.Codes, second.Codes)
	for _, code := range first.Codes {
		a, b := first.Get(code), second.Get(code)
		require.Len(t, b.Customers, len(a.Customers))
		for i := range a.Customers {
			assert.Equal(t, a.Customers[i].BabyName, b.Customers[i].BabyName)
			assert.Equal(t, a.Customers[i].VideoTypes, b.Customers[i].VideoTypes)
		}
	}
}
