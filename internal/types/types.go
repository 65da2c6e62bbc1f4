// =============================================================================
// Coupon Settlement System - Shared Types
// =============================================================================
//
// This package contains the data model shared across the pipeline stages to
// avoid import cycles. Types defined here are used by:
//   - classifier
//   - pipeline
//   - composer
//   - store
//
// LIFECYCLE:
//   RawRecords are produced once per uploaded file and are immutable for the
//   run. Everything derived from them (FilteredRecord, Customer,
//   DuplicatePair, SettlementStatement) is recomputed in full whenever an
//   upstream input changes; there is no incremental update.
//
// =============================================================================

package types

// =============================================================================
// SCHEMA
// =============================================================================

// Schema identifies which of the two known vendor-record shapes a file
// matches. It is decided once per uploaded file by the classifier and never
// re-derived mid-pipeline.
type Schema int

const (
	// SchemaUnknown means no classification rule matched.
	SchemaUnknown Schema = iota

	// SchemaWedding is a wedding-video redemption file
	// (keyed by groom name + bride name).
	SchemaWedding

	// SchemaFirstBirthday is a first-birthday (doljanchi) redemption file
	// (keyed by baby name + celebration date).
	SchemaFirstBirthday
)

// String returns the tag used in logs and persisted documents.
func (s Schema) String() string {
	switch s {
	case SchemaWedding:
		return "wedding"
	case SchemaFirstBirthday:
		return "firstbirthday"
	default:
		return "unknown"
	}
}

// =============================================================================
// RECORDS
// =============================================================================

// RawRecord is one spreadsheet row as a mapping of column name to raw cell
// value. Cells absent from the row are absent from the map; lookups of
// missing columns yield "".
type RawRecord map[string]string

// FilteredRecord is a RawRecord that passed the month filter, together with
// a sequence id assigned in output order starting at 0. The id is stable for
// one filtering run only and is not persisted.
type FilteredRecord struct {
	RawRecord

	// SeqID is the position of this record in the filtered output.
	SeqID int
}

// =============================================================================
// CUSTOMERS AND GROUPS
// =============================================================================

// Customer aggregates one or more filtered records that share an identity
// key within a single coupon code. The same person appearing under two
// coupon codes is two unrelated Customers.
//
// The name fields are schema-dependent: a Wedding customer fills GroomName
// and BrideName, a FirstBirthday customer fills BabyName, DadName and
// MomName. EventDate is the usage timestamp for Wedding and the celebration
// date for FirstBirthday.
type Customer struct {
	// ID is the group-local identifier "<couponCode>_<indexWithinGroup>".
	// It is assigned by the duplicate detector; empty before that stage.
	ID string

	GroomName string
	BrideName string

	BabyName string
	DadName  string
	MomName  string

	// ManagementNo is the vendor's management reference number.
	ManagementNo string

	// EventDate is the schema-specific relevant date, verbatim from the file.
	EventDate string

	// VideoTypes holds the distinct video-type labels (구분 column) seen for
	// this customer, duplicates collapsed.
	VideoTypes []string
}

// HasVideoType reports whether the label is already in the set.
func (c *Customer) HasVideoType(label string) bool {
	for _, v := range c.VideoTypes {
		if v == label {
			return true
		}
	}
	return false
}

// AddVideoType adds a label to the video-type set if not already present.
func (c *Customer) AddVideoType(label string) {
	if !c.HasVideoType(label) {
		c.VideoTypes = append(c.VideoTypes, label)
	}
}

// CouponGroup is the ordered sequence of Customers settled under one coupon
// code. Customer order follows the first appearance of each distinct
// identity in the filtered records.
type CouponGroup struct {
	CouponCode string
	Customers  []Customer
}

// GroupedData maps coupon code to its group while preserving the
// first-appearance order of the codes, which a plain map would lose.
type GroupedData struct {
	// Codes lists the coupon codes in first-appearance order.
	Codes []string

	// Groups indexes the groups by coupon code.
	Groups map[string]*CouponGroup
}

// NewGroupedData returns an empty, initialized GroupedData.
func NewGroupedData() GroupedData {
	return GroupedData{Groups: make(map[string]*CouponGroup)}
}

// Add appends the group for a new coupon code, keeping code order.
func (g *GroupedData) Add(group *CouponGroup) {
	if _, exists := g.Groups[group.CouponCode]; !exists {
		g.Codes = append(g.Codes, group.CouponCode)
	}
	g.Groups[group.CouponCode] = group
}

// Get returns the group for a coupon code, or nil.
func (g *GroupedData) Get(couponCode string) *CouponGroup {
	return g.Groups[couponCode]
}

// TotalCustomers returns the number of customers across all groups.
func (g *GroupedData) TotalCustomers() int {
	total := 0
	for _, code := range g.Codes {
		total += len(g.Groups[code].Customers)
	}
	return total
}

// =============================================================================
// DUPLICATES AND SELECTION
// =============================================================================

// MatchReason explains why two customers were flagged as likely duplicates.
type MatchReason int

const (
	// ExactNameMatch means the raw primary names are identical.
	ExactNameMatch MatchReason = iota

	// NormalizedNameMatch means the primary names match only after stripping
	// a leading surname character; the raw names differ.
	NormalizedNameMatch
)

// String returns a short reason label for reports.
func (r MatchReason) String() string {
	if r == ExactNameMatch {
		return "name identical"
	}
	return "name similar"
}

// DuplicatePair flags two customers in the same coupon group whose primary
// names collide. It is an annotation over the customers and never mutates
// them. Customer1 is the earlier occurrence, Customer2 the later one.
type DuplicatePair struct {
	CouponCode string
	Customer1  Customer
	Customer2  Customer
	Reason     MatchReason
}

// SelectionState maps customer id to whether the operator wants the customer
// included in settlement. The pipeline only supplies defaults; the map is
// operator-mutable between stages.
type SelectionState map[string]bool

// SelectedCount returns the number of selected customers.
func (s SelectionState) SelectedCount() int {
	n := 0
	for _, selected := range s {
		if selected {
			n++
		}
	}
	return n
}

// =============================================================================
// SETTLEMENT OUTPUT
// =============================================================================

// SettlementStatement is the final per-coupon-code output: how many selected
// customers, the amount owed, and the rendered message sent to the vendor.
type SettlementStatement struct {
	CouponCode  string
	TotalCount  int
	TotalAmount int
	Message     string
}

// =============================================================================
// PERSISTENCE RESULTS
// =============================================================================

// RecordResult is the outcome of persisting a single settlement statement.
type RecordResult struct {
	CouponCode string
	Success    bool

	// DocumentID is the identifier generated by the store on success.
	DocumentID string

	// Error holds the failure, nil on success.
	Error error
}

// RecordSummary aggregates the per-statement persistence outcomes of one
// batch. Every statement is attempted exactly once; a failure never cancels
// the remaining attempts.
type RecordSummary struct {
	Succeeded     int
	Failed        int
	FailedVendors []string
	Results       []RecordResult
}
