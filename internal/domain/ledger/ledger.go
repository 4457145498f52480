// Package ledger derives the paid total and outstanding balance of an order.
package ledger

import "encoding/json"

// Result is the ledger state of one order at a point in time.
type Result struct {
	Price     Amount `json:"price"`
	TotalPaid Amount `json:"total_paid"`
	Balance   Amount `json:"balance"`
}

// PaidInFull reports whether nothing is owed. Overpayment counts as paid in
// full and is never shown as a credit.
func (r Result) PaidInFull() bool {
	return r.Balance <= 0
}

func (r Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	return json.Marshal(&struct {
		Alias
		PaidInFull bool `json:"paid_in_full"`
	}{
		Alias:      Alias(r),
		PaidInFull: r.PaidInFull(),
	})
}

// Compute reconciles the persisted paid total with a payment that is being
// recorded right now.
//
// When the order already exists and the persisted total is positive and at
// least as large as payingNow, the persisted total is assumed to include the
// in-flight payment and is used as is. Otherwise payingNow is added on top.
// Negative inputs are treated as zero.
func Compute(price, existingPaid, payingNow Amount, hasPersistedID bool) Result {
	price = nonNegative(price)
	existingPaid = nonNegative(existingPaid)
	payingNow = nonNegative(payingNow)

	totalPaid := existingPaid + payingNow
	if hasPersistedID && existingPaid >= payingNow && existingPaid > 0 {
		totalPaid = existingPaid
	}

	return Result{
		Price:     price,
		TotalPaid: totalPaid,
		Balance:   price - totalPaid,
	}
}

// Sum totals a payment history.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += nonNegative(a)
	}
	return total
}

func nonNegative(a Amount) Amount {
	if a < 0 {
		return 0
	}
	return a
}
