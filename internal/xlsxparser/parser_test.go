package xlsxparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

func TestRecordsFromRows(t *testing.T) {
	rows := [][]string{
		{"쿠폰 코드", "아가이름", "돌잔치날짜"},
		{"PARTY01", "하은", "25-08-02"},
		{"PARTY02", "지호", "25-08-03"},
	}

	records := RecordsFromRows(rows)

	require.Len(t, records, 2)
	assert.Equal(t, types.RawRecord{
		"쿠폰 코드": "PARTY01", "아가이름": "하은", "돌잔치날짜": "25-08-02",
	}, records[0])
	assert.Equal(t, "PARTY02", records[1]["쿠폰 코드"])
}

func TestRecordsFromRows_SkipsLeadingEmptyRows(t *testing.T) {
	rows := [][]string{
		{},
		{"", "", ""},
		{"쿠폰 코드", "아가이름"},
		{"PARTY01", "하은"},
	}

	records := RecordsFromRows(rows)

	require.Len(t, records, 1)
	assert.Equal(t, "PARTY01", records[0]["쿠폰 코드"])
}

func TestRecordsFromRows_SkipsEmptyDataRows(t *testing.T) {
	rows := [][]string{
		{"쿠폰 코드", "아가이름"},
		{"PARTY01", "하은"},
		{"", ""},
		{"PARTY02", "지호"},
	}

	records := RecordsFromRows(rows)

	assert.Len(t, records, 2)
}

func TestRecordsFromRows_HeaderWhitespaceTrimmed(t *testing.T) {
	rows := [][]string{
		{" 쿠폰 코드 ", "아가이름"},
		{"PARTY01", "하은"},
	}

	records := RecordsFromRows(rows)

	require.Len(t, records, 1)
	assert.Equal(t, "PARTY01", records[0]["쿠폰 코드"])
}

func TestRecordsFromRows_RaggedRows(t *testing.T) {
	rows := [][]string{
		{"쿠폰 코드", "아가이름", "돌잔치날짜"},
		{"PARTY01", "하은"},                            // short row
		{"PARTY02", "지호", "25-08-03", "overflow"},   // extra cell
	}

	records := RecordsFromRows(rows)

	require.Len(t, records, 2)

	_, hasDate := records[0]["돌잔치날짜"]
	assert.False(t, hasDate)

	assert.Len(t, records[1], 3)
}

func TestRecordsFromRows_Empty(t *testing.T) {
	assert.Nil(t, RecordsFromRows(nil))
	assert.Nil(t, RecordsFromRows([][]string{{"", ""}}))

	// Header only: no records, not an error.
	assert.Empty(t, RecordsFromRows([][]string{{"쿠폰 코드", "아가이름"}}))
}
