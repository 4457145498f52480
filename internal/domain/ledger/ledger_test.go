package ledger

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		price          Amount
		existingPaid   Amount
		payingNow      Amount
		hasPersistedID bool
		wantPaid       Amount
		wantBalance    Amount
	}{
		{
			name:           "persisted total already includes payment",
			price:          300000,
			existingPaid:   50000,
			payingNow:      50000,
			hasPersistedID: true,
			wantPaid:       50000,
			wantBalance:    250000,
		},
		{
			name:           "nothing persisted yet is additive",
			price:          300000,
			existingPaid:   0,
			payingNow:      50000,
			hasPersistedID: true,
			wantPaid:       50000,
			wantBalance:    250000,
		},
		{
			name:           "partial payment on existing order",
			price:          300000,
			existingPaid:   100000,
			payingNow:      0,
			hasPersistedID: true,
			wantPaid:       100000,
			wantBalance:    200000,
		},
		{
			name:         "settled order",
			price:        300000,
			existingPaid: 300000,
			wantPaid:     300000,
			wantBalance:  0,
		},
		{
			name:           "new order with full deposit",
			price:          150000,
			existingPaid:   0,
			payingNow:      150000,
			hasPersistedID: false,
			wantPaid:       150000,
			wantBalance:    0,
		},
		{
			name:           "payment larger than persisted total is added",
			price:          300000,
			existingPaid:   20000,
			payingNow:      50000,
			hasPersistedID: true,
			wantPaid:       70000,
			wantBalance:    230000,
		},
		{
			name:         "overpayment leaves a negative balance",
			price:        100000,
			existingPaid: 120000,
			wantPaid:     120000,
			wantBalance:  -20000,
		},
		{
			name:         "negative inputs degrade to zero",
			price:        -500,
			existingPaid: -100,
			payingNow:    -1,
			wantPaid:     0,
			wantBalance:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.price, tt.existingPaid, tt.payingNow, tt.hasPersistedID)
			assert.Equal(t, tt.wantPaid, got.TotalPaid)
			assert.Equal(t, tt.wantBalance, got.Balance)
		})
	}
}

func TestComputeMatchesPaymentHistory(t *testing.T) {
	histories := [][]Amount{
		nil,
		{100000},
		{25000, 25000, 50000},
		{1, 2, 3, 4, 5},
		{300000, 50000},
	}

	for _, payments := range histories {
		sum := Sum(payments...)
		got := Compute(300000, sum, 0, true)
		assert.Equal(t, sum, got.TotalPaid)
		assert.Equal(t, Amount(300000)-sum, got.Balance)

		reversed := make([]Amount, len(payments))
		for i, p := range payments {
			reversed[len(payments)-1-i] = p
		}
		assert.Equal(t, sum, Sum(reversed...))
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	first := Compute(300000, 100000, 50000, true)
	second := Compute(300000, 100000, 50000, true)
	assert.Equal(t, first, second)
}

func TestPaidInFull(t *testing.T) {
	assert.True(t, Result{Balance: 0}.PaidInFull())
	assert.True(t, Result{Balance: -1}.PaidInFull())
	assert.False(t, Result{Balance: 1}.PaidInFull())
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(Compute(300000, 100000, 0, true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":3000,"total_paid":1000,"balance":2000,"paid_in_full":false}`, string(data))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Amount(123450), FromFloat(1234.5))
	assert.Equal(t, Amount(1), FromFloat(0.005))
	assert.Equal(t, Amount(0), FromFloat(math.NaN()))
	assert.Equal(t, Amount(0), FromFloat(math.Inf(1)))
	assert.Equal(t, Amount(0), FromFloat(-20))
	assert.Equal(t, MaxAmount, FromFloat(1e20))
	assert.Equal(t, MaxAmount, FromFloat(math.MaxFloat64))
	assert.Greater(t, FromFloat(1e15), Amount(0))
}

func TestParseStrict(t *testing.T) {
	valid := map[string]Amount{
		"1500":     150000,
		"1,234.50": 123450,
		"":         0,
		"0":        0,
	}
	for in, want := range valid {
		got, err := ParseStrict(in)
		require.NoError(t, err, "ParseStrict(%q)", in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"abc", "-40", "NaN", "Inf", "12kes"} {
		_, err := ParseStrict(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ParseStrict(%q)", in)
	}

	_, err := FromFloatStrict(-0.01)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse(t *testing.T) {
	tests := map[string]Amount{
		"1500":      150000,
		" 250.75 ":  25075,
		"1,234.50":  123450,
		"":          0,
		"abc":       0,
		"-40":       0,
		"12e2":      120000,
		"0.1":       10,
		"3000.009":  300001,
	}
	for in, want := range tests {
		assert.Equal(t, want, Parse(in), "Parse(%q)", in)
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	var body struct {
		Number Amount `json:"number"`
		Text   Amount `json:"text"`
		Junk   Amount `json:"junk"`
		Null   Amount `json:"null"`
	}
	err := json.Unmarshal([]byte(`{"number":1500.5,"text":"200","junk":"n/a","null":null}`), &body)
	require.NoError(t, err)
	assert.Equal(t, Amount(150050), body.Number)
	assert.Equal(t, Amount(20000), body.Text)
	assert.Equal(t, Amount(0), body.Junk)
	assert.Equal(t, Amount(0), body.Null)
}
