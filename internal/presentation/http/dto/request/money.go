package request

import (
	"encoding/json"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

// Money is an amount sent by a client. It accepts a number or a numeric
// string and, unlike ledger.Amount, fails on negative or malformed input.
type Money ledger.Amount

// Amount returns the value as a ledger amount.
func (m Money) Amount() ledger.Amount {
	return ledger.Amount(m)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		a   ledger.Amount
		err error
	)
	switch v := raw.(type) {
	case nil:
	case float64:
		a, err = ledger.FromFloatStrict(v)
	case string:
		a, err = ledger.ParseStrict(v)
	default:
		err = ledger.ErrInvalidAmount
	}
	if err != nil {
		return err
	}
	*m = Money(a)
	return nil
}

// AmountPtr converts an optional Money to an optional ledger amount.
func AmountPtr(m *Money) *ledger.Amount {
	if m == nil {
		return nil
	}
	a := m.Amount()
	return &a
}
