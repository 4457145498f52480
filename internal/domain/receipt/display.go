package receipt

import (
	"bytes"
	"html/template"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

// Display is the structured receipt shown in the payment confirmation view.
type Display struct {
	ShopName    string `json:"shop_name"`
	ShopPhone   string `json:"shop_phone,omitempty"`
	Date        string `json:"date"`
	OrderNo     string `json:"order_no"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Garment     string `json:"garment,omitempty"`
	TotalAmount string `json:"total_amount"`
	PaidNow     string `json:"paid_now,omitempty"`
	TotalPaid   string `json:"total_paid"`
	BalanceDue  string `json:"balance_due,omitempty"`
	PaidInFull  bool   `json:"paid_in_full"`
	// BalanceWarning is set while money is still owed.
	BalanceWarning bool          `json:"balance_warning"`
	Ledger         ledger.Result `json:"ledger"`
}

// RenderDisplay builds the display form of the receipt.
func (r *Renderer) RenderDisplay(o Order, res ledger.Result, payingNow ledger.Amount) Display {
	s := r.snapshot(o, res, payingNow)

	phone := s.customerPhone
	if phone == "" {
		phone = missingPhone
	}

	d := Display{
		ShopName:    s.shopName,
		ShopPhone:   s.shopPhone,
		Date:        s.date,
		OrderNo:     s.orderNo,
		ClientName:  s.customer,
		ClientPhone: phone,
		Garment:     s.garment,
		TotalAmount: r.money.Format(s.result.Price),
		TotalPaid:   r.money.Format(s.result.TotalPaid),
		PaidInFull:  s.result.PaidInFull(),
		Ledger:      s.result,
	}
	if s.payingNow > 0 {
		d.PaidNow = r.money.Format(s.payingNow)
	}
	if !d.PaidInFull {
		d.BalanceDue = r.money.Format(s.result.Balance)
		d.BalanceWarning = true
	}
	return d
}

var displayTemplate = template.Must(template.New("receipt").Parse(`<div class="receipt">
  <h2>{{.ShopName}}</h2>
  {{- if .ShopPhone}}
  <p class="shop-phone">{{.ShopPhone}}</p>
  {{- end}}
  <table>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Order</td><td>#{{.OrderNo}}</td></tr>
    <tr><td>Client</td><td>{{.ClientName}}</td></tr>
    <tr><td>Phone</td><td>{{.ClientPhone}}</td></tr>
    {{- if .Garment}}
    <tr><td>Garment</td><td>{{.Garment}}</td></tr>
    {{- end}}
    <tr><td>Total Amount</td><td>{{.TotalAmount}}</td></tr>
    {{- if .PaidNow}}
    <tr><td>Paid Now</td><td>{{.PaidNow}}</td></tr>
    {{- end}}
    <tr><td>Total Paid</td><td>{{.TotalPaid}}</td></tr>
  </table>
  {{- if .PaidInFull}}
  <p class="status paid">PAID IN FULL</p>
  {{- else}}
  <p class="status due warning">Balance Due: {{.BalanceDue}}</p>
  {{- end}}
</div>
`))

// HTML renders the display block as an escaped HTML fragment.
func (d Display) HTML() (string, error) {
	var buf bytes.Buffer
	if err := displayTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
