// =============================================================================
// Coupon Settlement System - Settlement Composer
// =============================================================================
//
// This module turns the operator-curated selection into one settlement
// statement per coupon code: a count of selected customers, the total owed
// (count x unit price), and the rendered vendor message. Coupon codes with
// zero selected customers produce no statement. Output order follows the
// coupon-code order of the input mapping.
//
// =============================================================================

package composer

import (
	"fmt"
	"strings"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/classifier"
	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// Composer renders settlement statements.
type Composer struct {
	// UnitPrice is the settlement amount per customer, in won.
	UnitPrice int

	// BankAccount is the payee line of the message, e.g.
	// "국민은행 이용현 781601-00-231766".
	BankAccount string
}

// Compose builds one statement per coupon code that has at least one
// selected customer. Customer lines appear in group order.
func (c *Composer) Compose(grouped types.GroupedData, selection types.SelectionState, acc classifier.Accessor) []types.SettlementStatement {
	var statements []types.SettlementStatement

	for _, code := range grouped.Codes {
		group := grouped.Get(code)

		var selected []types.Customer
		for _, customer := range group.Customers {
			if selection[customer.ID] {
				selected = append(selected, customer)
			}
		}
		if len(selected) == 0 {
			continue
		}

		total := len(selected) * c.UnitPrice
		statements = append(statements, types.SettlementStatement{
			CouponCode:  code,
			TotalCount:  len(selected),
			TotalAmount: total,
			Message:     c.renderMessage(selected, total, acc),
		})
	}

	return statements
}

// renderMessage fills the fixed vendor message template.
func (c *Composer) renderMessage(selected []types.Customer, total int, acc classifier.Accessor) string {
	names := make([]string, len(selected))
	for i, customer := range selected {
		names[i] = acc.FormatName(customer)
	}

	return fmt.Sprintf(`안녕하세요😁
건별 정산내용 보내드립니다!
이번달은 %d건의 %s 제작건이 있었습니다.
최종 합계금액은 %s원이며 입금계좌는 아래와 같습니다.
상세내역:
%s
%s 으로
합계금액 %s원을 입금 요청드립니다.
오늘 하루도 행복만 가득하세요!`,
		len(selected),
		acc.ServiceLabel(),
		FormatAmount(total),
		strings.Join(names, "\n"),
		c.BankAccount,
		FormatAmount(total),
	)
}

// FormatAmount renders an amount with thousands separators: 15000 -> "15,000".
func FormatAmount(amount int) string {
	digits := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
