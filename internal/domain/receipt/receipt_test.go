package receipt

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 7, 15, 4, 0, 0, time.UTC)
}

func newTestRenderer(shop string) *Renderer {
	return NewRenderer(Branding{ShopName: shop, CurrencySymbol: "Ksh", Locale: "en"}, WithClock(fixedClock))
}

var testOrder = Order{
	ID:            "a1b2c3d4-e5f6-7890-abcd-ef0123456789",
	CustomerName:  "Jane Wanjiku",
	CustomerPhone: "+254 712 345 678",
	GarmentType:   "Suit",
}

func TestRenderTextWithBalance(t *testing.T) {
	r := newTestRenderer("Savile Row")
	res := ledger.Compute(300000, 100000, 0, true)

	text := r.RenderText(testOrder, res, 0)

	want := strings.Join([]string{
		"SAVILE ROW",
		textSeparator,
		"Date: 3/7/2024",
		"Order: #A1B2C3D4",
		"Customer: Jane Wanjiku",
		"Phone: +254 712 345 678",
		"Garment: Suit",
		"",
		"Total Cost: Ksh 3,000.00",
		"Total Paid: Ksh 1,000.00",
		"Balance Due: Ksh 2,000.00",
		textSeparator,
		"Balance Due",
		"",
		"Thank you for your business!",
	}, "\n")
	assert.Equal(t, want, text)
}

func TestRenderTextPaidInFull(t *testing.T) {
	r := newTestRenderer("")
	res := ledger.Compute(150000, 0, 150000, false)

	text := r.RenderText(Order{ID: "abc"}, res, 150000)

	assert.True(t, strings.HasPrefix(text, DefaultShopName+"\n"))
	assert.Contains(t, text, "Order: #ABC")
	assert.Contains(t, text, "Customer: Unknown")
	assert.Contains(t, text, "Paid Now: Ksh 1,500.00")
	assert.Contains(t, text, "Total Paid: Ksh 1,500.00")
	assert.Contains(t, text, statusPaidInFull)
	assert.NotContains(t, text, "Balance Due")
	assert.NotContains(t, text, "Garment:")
}

func TestRenderTextOverpaidIsPaidInFull(t *testing.T) {
	r := newTestRenderer("Shop")
	text := r.RenderText(testOrder, ledger.Compute(100000, 120000, 0, true), 0)
	assert.Contains(t, text, statusPaidInFull)
	assert.NotContains(t, text, "-200")
}

func TestRenderDisplay(t *testing.T) {
	r := newTestRenderer("Savile Row")
	res := ledger.Compute(300000, 100000, 50000, true)

	d := r.RenderDisplay(Order{ID: "ffeeddcc11", CustomerName: "Otieno"}, res, 50000)

	assert.Equal(t, "SAVILE ROW", d.ShopName)
	assert.Equal(t, "FFEEDDCC", d.OrderNo)
	assert.Equal(t, "3/7/2024", d.Date)
	assert.Equal(t, "N/A", d.ClientPhone)
	assert.Equal(t, "Ksh 3,000.00", d.TotalAmount)
	assert.Equal(t, "Ksh 500.00", d.PaidNow)
	assert.Equal(t, "Ksh 1,000.00", d.TotalPaid)
	assert.Equal(t, "Ksh 2,000.00", d.BalanceDue)
	assert.False(t, d.PaidInFull)
	assert.True(t, d.BalanceWarning)
	assert.Equal(t, res, d.Ledger)
}

func TestDisplayHTMLEscapes(t *testing.T) {
	r := newTestRenderer("Shop")
	d := r.RenderDisplay(Order{ID: "12345678", CustomerName: "<script>x</script>"}, ledger.Compute(1000, 1000, 0, true), 0)

	html, err := d.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "PAID IN FULL")
	assert.NotContains(t, html, "Balance Due")
}

func TestFormsAgree(t *testing.T) {
	r := newTestRenderer("Shop")
	res := ledger.Compute(250000, 75000, 0, true)

	text := r.RenderText(testOrder, res, 0)
	d := r.RenderDisplay(testOrder, res, 0)
	job := r.RenderESCPOS(testOrder, res, 0, 0)

	for _, figure := range []string{d.TotalAmount, d.TotalPaid, d.BalanceDue} {
		assert.Contains(t, text, figure)
		assert.True(t, bytes.Contains(job, []byte(figure)), "print job missing %q", figure)
	}
}

func TestRenderESCPOS(t *testing.T) {
	r := newTestRenderer("Shop")

	job := r.RenderESCPOS(testOrder, ledger.Compute(300000, 300000, 0, true), 0, 0)

	assert.True(t, bytes.HasPrefix(job, []byte{0x1B, '@'}))
	assert.True(t, bytes.HasSuffix(job, []byte{0x1D, 'V', 0x01}))
	assert.True(t, bytes.Contains(job, []byte("*** PAID IN FULL ***")))
	assert.False(t, bytes.Contains(job, []byte("Balance Due:")))
	assert.True(t, bytes.Contains(job, []byte("#A1B2C3D4")))
}

func TestShareLinks(t *testing.T) {
	links := ShareLinks("Paid 1,000\nThanks & bye", "+254 (712) 345-678")

	assert.True(t, strings.HasPrefix(links.WhatsApp, "https://wa.me/254712345678?text="))
	assert.True(t, strings.HasPrefix(links.SMS, "sms:254712345678?body="))
	assert.NotContains(t, links.WhatsApp, "+")
	assert.Contains(t, links.WhatsApp, "%20")
	assert.Contains(t, links.WhatsApp, "%0A")
	assert.Contains(t, links.SMS, "%26")

	body := strings.TrimPrefix(links.SMS, "sms:254712345678?body=")
	decoded, err := url.PathUnescape(body)
	require.NoError(t, err)
	assert.Equal(t, "Paid 1,000\nThanks & bye", decoded)
}

func TestShareLinksWithoutDigits(t *testing.T) {
	assert.Equal(t, Links{}, ShareLinks("hello", ""))
	assert.Equal(t, Links{}, ShareLinks("hello", "N/A"))
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "A1B2C3D4", OrderNumber("a1b2c3d4-e5f6"))
	assert.Equal(t, "AB", OrderNumber(" ab "))
	assert.Equal(t, "", OrderNumber(""))
}
