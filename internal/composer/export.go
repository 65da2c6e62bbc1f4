// =============================================================================
// Coupon Settlement System - Text Export
// =============================================================================
//
// Serializes the full statement sequence plus the settlement month into a
// single human-readable text blob for download. The contract is field order
// and presence (vendor code, count, amount, message body); the surrounding
// layout is presentation.
//
// =============================================================================

package composer

import (
	"fmt"
	"strings"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// ExportText renders the statements for a settlement month ("YYYY-MM") as a
// downloadable text report.
func ExportText(statements []types.SettlementStatement, month string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "정산 내역 - %s\n", month)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, stmt := range statements {
		fmt.Fprintf(&b, "업체: %s\n", stmt.CouponCode)
		fmt.Fprintf(&b, "건수: %d건\n", stmt.TotalCount)
		fmt.Fprintf(&b, "금액: %s원\n", FormatAmount(stmt.TotalAmount))
		b.WriteString("\n메시지 내용:\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
		b.WriteString(stmt.Message + "\n")
		b.WriteString(strings.Repeat("=", 50) + "\n\n")
	}

	return b.String()
}
