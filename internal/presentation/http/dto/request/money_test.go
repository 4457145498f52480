package request

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshalJSON(t *testing.T) {
	var req CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"1,500","deposit":250.5}`), &req))
	assert.Equal(t, ledger.Amount(150000), req.Price.Amount())
	assert.Equal(t, ledger.Amount(25050), req.Deposit.Amount())

	for _, body := range []string{
		`{"price":"abc"}`,
		`{"price":-100}`,
		`{"price":"-1"}`,
		`{"price":true}`,
		`{"deposit":{"value":1}}`,
	} {
		var r CreateOrderRequest
		err := json.Unmarshal([]byte(body), &r)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount, body)
	}

	var blank QuickPayRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount":null}`), &blank))
	assert.Equal(t, ledger.Amount(0), blank.Amount.Amount())
}

func TestAmountPtr(t *testing.T) {
	assert.Nil(t, AmountPtr(nil))

	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"800"}`), &req))
	got := AmountPtr(req.Price)
	require.NotNil(t, got)
	assert.Equal(t, ledger.Amount(80000), *got)
}
