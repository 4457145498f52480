package request

// PrintReceiptRequest is the request body for printing a receipt.
// PayingNow is the payment just taken, if any.
type PrintReceiptRequest struct {
	OrderID   string `json:"order_id" binding:"required,uuid"`
	PayingNow Money  `json:"paying_now"`
}
