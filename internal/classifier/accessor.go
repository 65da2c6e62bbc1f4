// =============================================================================
// Coupon Settlement System - Schema Accessors
// =============================================================================
//
// An Accessor bundles every schema-specific read the pipeline performs:
// which columns hold the coupon code and date, how the customer identity key
// is built, how a record projects into a Customer, and how customer names
// are rendered in the settlement message. The accessor is chosen exactly
// once, from the classifier's verdict, so no later stage branches on the
// schema or touches column names.
//
// =============================================================================

package classifier

import (
	"fmt"
	"strings"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// Accessor is the schema-specific field access used by all pipeline stages.
type Accessor interface {
	// Schema returns the schema this accessor serves.
	Schema() types.Schema

	// CouponCode returns the record's coupon (vendor) code.
	CouponCode(r types.RawRecord) string

	// DateValue returns the raw value of the schema's date field.
	DateValue(r types.RawRecord) string

	// DateInMonth reports whether the raw date value, normalized per the
	// schema's format, falls inside the given year and 1-12 month.
	// Unparsable values report false.
	DateInMonth(raw string, year, month int) bool

	// IdentityKey builds the composite customer identity for a record. Two
	// records belong to the same customer iff their keys are equal.
	IdentityKey(r types.RawRecord) string

	// VideoType returns the record's video-type label.
	VideoType(r types.RawRecord) string

	// NewCustomer projects a record into a fresh Customer with an empty
	// video-type set.
	NewCustomer(r types.RawRecord) types.Customer

	// PrimaryName is the single field used for fuzzy duplicate matching.
	PrimaryName(c types.Customer) string

	// FormatName renders the customer's display name for the settlement
	// message.
	FormatName(c types.Customer) string

	// ServiceLabel is the service-type label used in the settlement message.
	ServiceLabel() string
}

// AccessorFor returns the accessor for a schema. SchemaUnknown falls back to
// the FirstBirthday field set as a best-effort default so the pipeline
// stages stay total; missing columns simply read as "".
func AccessorFor(schema types.Schema) Accessor {
	if schema == types.SchemaWedding {
		return weddingAccessor{}
	}
	return firstBirthdayAccessor{schema: schema}
}

// =============================================================================
// WEDDING
// =============================================================================

type weddingAccessor struct{}

func (weddingAccessor) Schema() types.Schema { return types.SchemaWedding }

func (weddingAccessor) CouponCode(r types.RawRecord) string { return r[ColCouponCode] }

func (weddingAccessor) DateValue(r types.RawRecord) string { return r[ColUsageDate] }

// DateInMonth handles usage timestamps of the form "2025-08-28 18:59:57":
// the date portion before the first space is split on "-" and the year and
// zero-padded month are compared directly.
func (weddingAccessor) DateInMonth(raw string, year, month int) bool {
	datePart := raw
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		datePart = raw[:i]
	}
	parts := strings.Split(datePart, "-")
	if len(parts) < 2 {
		return false
	}
	return parts[0] == fmt.Sprintf("%d", year) && parts[1] == fmt.Sprintf("%02d", month)
}

func (weddingAccessor) IdentityKey(r types.RawRecord) string {
	return r[ColGroomName] + "_" + r[ColBrideName]
}

func (weddingAccessor) VideoType(r types.RawRecord) string { return r[ColCategory] }

func (weddingAccessor) NewCustomer(r types.RawRecord) types.Customer {
	return types.Customer{
		GroomName:    r[ColGroomName],
		BrideName:    r[ColBrideName],
		ManagementNo: r[ColManagementNo],
		EventDate:    r[ColUsageDate],
	}
}

func (weddingAccessor) PrimaryName(c types.Customer) string { return c.GroomName }

func (weddingAccessor) FormatName(c types.Customer) string {
	return c.GroomName + " & " + c.BrideName
}

func (weddingAccessor) ServiceLabel() string { return "웨딩영상" }

// =============================================================================
// FIRST BIRTHDAY
// =============================================================================

// firstBirthdayAccessor also serves SchemaUnknown, carrying the original
// schema tag so persisted documents stay honest about the classification.
type firstBirthdayAccessor struct {
	schema types.Schema
}

func (a firstBirthdayAccessor) Schema() types.Schema { return a.schema }

func (firstBirthdayAccessor) CouponCode(r types.RawRecord) string { return r[ColCouponCode] }

func (firstBirthdayAccessor) DateValue(r types.RawRecord) string { return r[ColPartyDate] }

// DateInMonth handles celebration dates of the form "25-08-02": the
// two-digit year is prefixed with "20" and the value must split into exactly
// three parts.
func (firstBirthdayAccessor) DateInMonth(raw string, year, month int) bool {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return false
	}
	return "20"+parts[0] == fmt.Sprintf("%d", year) && parts[1] == fmt.Sprintf("%02d", month)
}

func (firstBirthdayAccessor) IdentityKey(r types.RawRecord) string {
	return r[ColBabyName] + "_" + r[ColPartyDate]
}

func (firstBirthdayAccessor) VideoType(r types.RawRecord) string { return r[ColCategory] }

func (firstBirthdayAccessor) NewCustomer(r types.RawRecord) types.Customer {
	return types.Customer{
		BabyName:     r[ColBabyName],
		DadName:      r[ColDadName],
		MomName:      r[ColMomName],
		ManagementNo: r[ColManagementNo],
		EventDate:    r[ColPartyDate],
	}
}

func (firstBirthdayAccessor) PrimaryName(c types.Customer) string { return c.BabyName }

// FormatName renders "아가이름(엄마이름)" when the mother's name is present
// and non-blank, else the baby name alone.
func (firstBirthdayAccessor) FormatName(c types.Customer) string {
	if strings.TrimSpace(c.MomName) != "" {
		return c.BabyName + "(" + c.MomName + ")"
	}
	return c.BabyName
}

func (firstBirthdayAccessor) ServiceLabel() string { return "돌잔치영상" }
