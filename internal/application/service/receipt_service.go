package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/receipt"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/printer"
	"go.uber.org/zap"
)

// ReceiptService renders order receipts and sends them to the thermal printer.
type ReceiptService struct {
	orderRepo repository.OrderRepository
	renderer  *receipt.Renderer
	printer   printer.Printer
	width     int
	log       *zap.Logger
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	orderRepo repository.OrderRepository,
	renderer *receipt.Renderer,
	p printer.Printer,
	width int,
	log *zap.Logger,
) *ReceiptService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &ReceiptService{
		orderRepo: orderRepo,
		renderer:  renderer,
		printer:   p,
		width:     width,
		log:       log,
	}
}

// ReceiptOutput holds every rendering of one ledger computation.
type ReceiptOutput struct {
	Text    string          `json:"text"`
	Display receipt.Display `json:"display"`
	HTML    string          `json:"html"`
	Share   receipt.Links   `json:"share"`
	Ledger  ledger.Result   `json:"ledger"`
}

func (s *ReceiptService) order(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

func (s *ReceiptService) build(order *entity.Order, payingNow ledger.Amount) (*ReceiptOutput, error) {
	res := ledger.Compute(order.Price, order.AmountPaid, payingNow, true)
	ro := receiptOrder(order)

	text := s.renderer.RenderText(ro, res, payingNow)
	display := s.renderer.RenderDisplay(ro, res, payingNow)
	html, err := display.HTML()
	if err != nil {
		return nil, err
	}

	return &ReceiptOutput{
		Text:    text,
		Display: display,
		HTML:    html,
		Share:   receipt.ShareLinks(text, order.CustomerPhone),
		Ledger:  res,
	}, nil
}

// BuildReceipt renders the receipt of an order. payingNow is the payment just
// taken, or zero to show the standing balance.
func (s *ReceiptService) BuildReceipt(ctx context.Context, orderID uuid.UUID, payingNow ledger.Amount) (*ReceiptOutput, error) {
	order, err := s.order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.build(order, payingNow)
}

// PrintOutput is the receipt with the outcome of the print job.
type PrintOutput struct {
	Receipt    *ReceiptOutput `json:"receipt"`
	Printed    bool           `json:"printed"`
	PrintError string         `json:"print_error,omitempty"`
}

// PrintReceipt sends an order's receipt to the printer. A printer failure is
// reported in the output rather than as an error so the caller still gets the
// receipt to share.
func (s *ReceiptService) PrintReceipt(ctx context.Context, orderID uuid.UUID, payingNow ledger.Amount) (*PrintOutput, error) {
	order, err := s.order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out, err := s.build(order, payingNow)
	if err != nil {
		return nil, err
	}

	data := s.renderer.RenderESCPOS(receiptOrder(order), out.Ledger, payingNow, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.log.Warn("receipt print failed",
			zap.String("order_id", orderID.String()),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err),
		)
		return &PrintOutput{Receipt: out, PrintError: err.Error()}, nil
	}
	return &PrintOutput{Receipt: out, Printed: true}, nil
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetPrinterStatus returns printer connection status.
func (s *ReceiptService) GetPrinterStatus(ctx context.Context) *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       kind,
		Width:      s.width,
	}
}

// TestPrint sends a short test page to the printer.
func (s *ReceiptService) TestPrint(ctx context.Context) error {
	doc := printer.NewDocument(s.width)
	doc.Title("PRINTER TEST").
		Separator('-').
		KeyValue("Printer", s.printer.Kind()).
		KeyValue("Width", fmt.Sprintf("%d chars", s.width)).
		KeyValue("Time", time.Now().Format("2006-01-02 15:04")).
		Separator('-').
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(ctx, doc.Bytes()); err != nil {
		return apperror.NewAppError(http.StatusServiceUnavailable, fmt.Sprintf("Test print failed: %v", err))
	}
	return nil
}
