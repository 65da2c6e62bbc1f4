// =============================================================================
// Coupon Settlement System - Schema Classifier
// =============================================================================
//
// This module inspects a parsed record set and decides which of the two known
// vendor-record schemas it matches. Classification happens once per uploaded
// file; every later stage reads fields through the Accessor chosen here and
// never does its own column lookups.
//
// CLASSIFICATION RULES (in order):
//   1. FirstBirthday column fingerprint: at least 2 of the 4 fingerprint
//      columns present in the first record.
//   2. Wedding column fingerprint: at least 1 of the 5 fingerprint columns
//      present. Wedding-only column names are rarer false-positive risks, so
//      the single-column threshold is safe; the stricter FirstBirthday check
//      runs first.
//   3. Keyword fallback: scan the 구분 (category) column of the first ten
//      records for vendor-specific keyword substrings.
//   4. Otherwise Unknown. Unknown is a valid terminal classification, not an
//      error.
//
// =============================================================================

package classifier

import (
	"strings"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================
// Column headers as they appear in the vendor spreadsheets.

const (
	// ColCouponCode is the coupon (vendor) code column, common to both schemas.
	ColCouponCode = "쿠폰 코드"

	// ColCategory is the video-type column, common to both schemas.
	ColCategory = "구분"

	// ColManagementNo is the management reference number column.
	ColManagementNo = "관리번호"

	// Wedding columns.
	ColGroomName = "신랑이름"
	ColBrideName = "신부이름"
	ColUsageDate = "사용일자"

	// FirstBirthday columns.
	ColBabyName  = "아가이름"
	ColDadName   = "아빠이름"
	ColMomName   = "엄마이름"
	ColPartyDate = "돌잔치날짜"
)

// firstBirthdayFingerprint are the columns characteristic of a
// first-birthday file. At least two must be present.
var firstBirthdayFingerprint = []string{ColPartyDate, ColBabyName, ColDadName, ColMomName}

// weddingFingerprint are the columns characteristic of a wedding file.
// One is enough.
var weddingFingerprint = []string{ColGroomName, ColBrideName, "웨딩날짜", "결혼식날짜", "예식날짜"}

// Category keyword sets for the fallback rule. The wedding set is checked
// first, matching the source system.
var (
	weddingKeywords       = []string{"식전", "포스터"}
	firstBirthdayKeywords = []string{"럽플릭스", "메인"}
)

// fallbackSampleSize is how many records the keyword fallback inspects.
const fallbackSampleSize = 10

// =============================================================================
// DETECTION
// =============================================================================

// Detect classifies a record set. It is deterministic and total: it always
// returns one of the three Schema values and never fails. An empty input
// yields SchemaUnknown without inspecting columns.
func Detect(records []types.RawRecord) types.Schema {
	if len(records) == 0 {
		return types.SchemaUnknown
	}

	// Rule 1 and 2: column fingerprints on the first record.
	columns := records[0]

	if countPresent(columns, firstBirthdayFingerprint) >= 2 {
		return types.SchemaFirstBirthday
	}
	if countPresent(columns, weddingFingerprint) >= 1 {
		return types.SchemaWedding
	}

	// Rule 3: keyword fallback over the category column of the first
	// records. Values are joined and lowercased before substring search.
	sample := records
	if len(sample) > fallbackSampleSize {
		sample = sample[:fallbackSampleSize]
	}

	var values []string
	for _, record := range sample {
		if v := record[ColCategory]; v != "" {
			values = append(values, v)
		}
	}
	joined := strings.ToLower(strings.Join(values, " "))

	if containsAny(joined, weddingKeywords) {
		return types.SchemaWedding
	}
	if containsAny(joined, firstBirthdayKeywords) {
		return types.SchemaFirstBirthday
	}

	return types.SchemaUnknown
}

// countPresent counts how many of the named columns exist in the record.
func countPresent(record types.RawRecord, columns []string) int {
	count := 0
	for _, col := range columns {
		if _, ok := record[col]; ok {
			count++
		}
	}
	return count
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
