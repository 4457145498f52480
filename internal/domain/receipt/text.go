package receipt

import (
	"strings"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

const (
	textSeparator    = "-----------------------------"
	statusBalanceDue = "Balance Due"
	statusPaidInFull = "✅ PAID IN FULL"
	thankYou         = "Thank you for your business!"
)

// RenderText formats the plain-text receipt used for copy and share flows.
// The "Balance Due" amount line is only printed while something is owed.
func (r *Renderer) RenderText(o Order, res ledger.Result, payingNow ledger.Amount) string {
	s := r.snapshot(o, res, payingNow)

	lines := make([]string, 0, 18)
	lines = append(lines, s.shopName)
	if s.shopPhone != "" {
		lines = append(lines, "Phone: "+s.shopPhone)
	}
	lines = append(lines,
		textSeparator,
		"Date: "+s.date,
		"Order: #"+s.orderNo,
		"Customer: "+s.customer,
	)
	if s.customerPhone != "" {
		lines = append(lines, "Phone: "+s.customerPhone)
	}
	if s.garment != "" {
		lines = append(lines, "Garment: "+s.garment)
	}

	lines = append(lines, "", "Total Cost: "+r.money.Format(s.result.Price))
	if s.payingNow > 0 {
		lines = append(lines, "Paid Now: "+r.money.Format(s.payingNow))
	}
	lines = append(lines, "Total Paid: "+r.money.Format(s.result.TotalPaid))
	if !s.result.PaidInFull() {
		lines = append(lines, "Balance Due: "+r.money.Format(s.result.Balance))
	}

	lines = append(lines, textSeparator)
	if s.result.PaidInFull() {
		lines = append(lines, statusPaidInFull)
	} else {
		lines = append(lines, statusBalanceDue)
	}
	lines = append(lines, "", thankYou)

	return strings.Join(lines, "\n")
}
