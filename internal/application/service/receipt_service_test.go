package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/pkg/printer"
)

type brokenPrinter struct{}

func (brokenPrinter) Print(context.Context, []byte) error { return errors.New("paper out") }
func (brokenPrinter) IsConnected(context.Context) bool    { return false }
func (brokenPrinter) Kind() string                        { return "network" }

func newReceiptFixture(p printer.Printer) (*ReceiptService, *entity.Order) {
	order := &entity.Order{
		ID:            uuid.New(),
		ShopID:        uuid.New(),
		CustomerName:  "Mary Wambui",
		CustomerPhone: "+254 712 345 678",
		GarmentType:   "Dress",
		Price:         300000,
	}
	book := newOrderBook(order)
	book.payments = append(book.payments, entity.Payment{OrderID: order.ID, Amount: 100000})
	return NewReceiptService(&stubOrderRepo{book: book}, testRenderer(), p, 0, zap.NewNop()), order
}

func TestReceiptServiceBuildReceipt(t *testing.T) {
	svc, order := newReceiptFixture(printer.NewNullPrinter())
	ctx := managerCtx(order.ShopID)

	out, err := svc.BuildReceipt(ctx, order.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, out.Ledger.TotalPaid)
	assert.EqualValues(t, 200000, out.Ledger.Balance)
	assert.NotContains(t, out.Text, "Paid Now")
	assert.Contains(t, out.Text, "Balance Due: Ksh 2,000.00")
	assert.True(t, out.Display.BalanceWarning)
	assert.Equal(t, "Mary Wambui", out.Display.ClientName)
	assert.Contains(t, out.HTML, "Balance Due: Ksh 2,000.00")
	assert.Contains(t, out.Share.WhatsApp, "https://wa.me/254712345678?text=")

	_, err = svc.BuildReceipt(ctx, uuid.New(), 0)
	assert.Equal(t, http.StatusNotFound, appErrorCode(err))
}

func TestReceiptServiceBuildReceiptWithPaymentInFlight(t *testing.T) {
	svc, order := newReceiptFixture(printer.NewNullPrinter())

	// The persisted total already includes the 1,000.00 just taken.
	out, err := svc.BuildReceipt(managerCtx(order.ShopID), order.ID, 100000)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, out.Ledger.TotalPaid)
	assert.Contains(t, out.Text, "Paid Now: Ksh 1,000.00")
	assert.Equal(t, "Ksh 1,000.00", out.Display.PaidNow)
}

func TestReceiptServicePrintReceipt(t *testing.T) {
	null := printer.NewNullPrinter()
	svc, order := newReceiptFixture(null)

	out, err := svc.PrintReceipt(managerCtx(order.ShopID), order.ID, 0)
	require.NoError(t, err)
	assert.True(t, out.Printed)
	assert.Empty(t, out.PrintError)

	job, jobs := null.Last()
	assert.Equal(t, 1, jobs)
	assert.True(t, bytes.Contains(job, []byte("Mary Wambui")))
}

func TestReceiptServicePrintFailureKeepsReceipt(t *testing.T) {
	svc, order := newReceiptFixture(brokenPrinter{})

	out, err := svc.PrintReceipt(managerCtx(order.ShopID), order.ID, 0)
	require.NoError(t, err)
	assert.False(t, out.Printed)
	assert.Equal(t, "paper out", out.PrintError)
	require.NotNil(t, out.Receipt)
	assert.NotEmpty(t, out.Receipt.Text)

	err = svc.TestPrint(context.Background())
	assert.Equal(t, http.StatusServiceUnavailable, appErrorCode(err))
}

func TestReceiptServicePrinterStatus(t *testing.T) {
	svc, _ := newReceiptFixture(printer.NewNullPrinter())
	status := svc.GetPrinterStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Type)
	assert.Equal(t, printer.Width58mm, status.Width)

	require.NoError(t, svc.TestPrint(context.Background()))

	svc, _ = newReceiptFixture(brokenPrinter{})
	assert.True(t, svc.GetPrinterStatus(context.Background()).Configured)
}
