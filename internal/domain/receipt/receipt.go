// Package receipt renders the billing summary of one order as plain text, as a
// display block and as an ESC/POS print job. Every form is built from the same
// snapshot of a ledger.Result so the figures always agree.
package receipt

import (
	"strings"
	"time"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

const (
	// DefaultShopName is printed when no shop name is configured.
	DefaultShopName = "FASHION HOUSE"

	orderNoLength   = 8
	unknownCustomer = "Unknown"
	missingPhone    = "N/A"
	dateLayout      = "1/2/2006"
)

// Branding is the shop identity printed on receipts.
type Branding struct {
	ShopName       string
	ShopPhone      string
	CurrencySymbol string
	Locale         string
}

// Order carries the identity fields of the order being billed.
type Order struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	GarmentType   string
}

// Renderer turns a ledger result into receipts.
type Renderer struct {
	shopName  string
	shopPhone string
	money     *ledger.Formatter
	now       func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the time source used for the receipt date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a renderer for the given branding.
func NewRenderer(b Branding, opts ...Option) *Renderer {
	name := strings.ToUpper(strings.TrimSpace(b.ShopName))
	if name == "" {
		name = DefaultShopName
	}

	r := &Renderer{
		shopName:  name,
		shopPhone: strings.TrimSpace(b.ShopPhone),
		money:     ledger.NewFormatter(b.CurrencySymbol, b.Locale),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Formatter exposes the currency formatter used on receipts.
func (r *Renderer) Formatter() *ledger.Formatter {
	return r.money
}

// snapshot holds the rendered facts shared by every receipt form.
type snapshot struct {
	shopName      string
	shopPhone     string
	date          string
	orderNo       string
	customer      string
	customerPhone string
	garment       string

	result    ledger.Result
	payingNow ledger.Amount
}

func (r *Renderer) snapshot(o Order, res ledger.Result, payingNow ledger.Amount) snapshot {
	customer := strings.TrimSpace(o.CustomerName)
	if customer == "" {
		customer = unknownCustomer
	}
	if payingNow < 0 {
		payingNow = 0
	}

	return snapshot{
		shopName:      r.shopName,
		shopPhone:     r.shopPhone,
		date:          r.now().Format(dateLayout),
		orderNo:       OrderNumber(o.ID),
		customer:      customer,
		customerPhone: strings.TrimSpace(o.CustomerPhone),
		garment:       strings.TrimSpace(o.GarmentType),
		result:        res,
		payingNow:     payingNow,
	}
}

// OrderNumber is the short, uppercased order reference printed on receipts.
func OrderNumber(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > orderNoLength {
		id = id[:orderNoLength]
	}
	return strings.ToUpper(id)
}
