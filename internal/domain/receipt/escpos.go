package receipt

import (
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/pkg/printer"
)

// RenderESCPOS builds a thermal print job for the receipt. width is the paper
// width in characters; zero selects 58mm paper.
func (r *Renderer) RenderESCPOS(o Order, res ledger.Result, payingNow ledger.Amount, width int) []byte {
	s := r.snapshot(o, res, payingNow)
	doc := printer.NewDocument(width)

	doc.Title(s.shopName)
	if s.shopPhone != "" {
		doc.SetAlign(printer.AlignCenter).Text(s.shopPhone).SetAlign(printer.AlignLeft)
	}
	doc.Separator('-')

	doc.KeyValue("Date:", s.date).
		KeyValue("Order:", "#"+s.orderNo).
		KeyValue("Customer:", s.customer)
	if s.customerPhone != "" {
		doc.KeyValue("Phone:", s.customerPhone)
	}
	if s.garment != "" {
		doc.KeyValue("Garment:", s.garment)
	}
	doc.Separator('-')

	doc.KeyValue("Total Cost:", r.money.Format(s.result.Price))
	if s.payingNow > 0 {
		doc.KeyValue("Paid Now:", r.money.Format(s.payingNow))
	}
	doc.KeyValue("Total Paid:", r.money.Format(s.result.TotalPaid))
	if !s.result.PaidInFull() {
		doc.SetBold(true).
			KeyValue("Balance Due:", r.money.Format(s.result.Balance)).
			SetBold(false)
	}
	doc.Separator('=')

	doc.SetAlign(printer.AlignCenter).SetBold(true)
	if s.result.PaidInFull() {
		doc.Text("*** PAID IN FULL ***")
	} else {
		doc.Text(statusBalanceDue)
	}
	doc.SetBold(false).
		LineFeed().
		Text(thankYou).
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
