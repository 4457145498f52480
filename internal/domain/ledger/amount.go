package ledger

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value in minor units (cents).
type Amount int64

// MaxAmount is the largest amount FromFloat produces.
const MaxAmount Amount = math.MaxInt64 / 100

// ErrInvalidAmount reports input that is not a non-negative number.
var ErrInvalidAmount = errors.New("amount must be a non-negative number")

// FromFloat converts a decimal amount to cents. NaN, infinities and
// non-positive values become zero; huge values saturate at MaxAmount.
func FromFloat(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	cents := math.Round(v * 100)
	if cents >= float64(MaxAmount) {
		return MaxAmount
	}
	return Amount(cents)
}

// FromFloatStrict is FromFloat for request input: NaN, infinities and
// negative values are reported instead of read as zero.
func FromFloatStrict(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return FromFloat(v), nil
}

// ParseStrict reads s like Parse but rejects anything that is not a
// non-negative number. A blank string is zero.
func ParseStrict(s string) (Amount, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return FromFloatStrict(v)
}

// Parse reads a user-entered decimal such as "1,500" or " 250.75 ".
// Anything that is not a positive number yields zero.
func Parse(s string) Amount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return FromFloat(v)
}

// Float returns the amount as a decimal value.
func (a Amount) Float() float64 {
	return float64(a) / 100
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float())
}

// UnmarshalJSON accepts a number or a numeric string. Values that cannot be
// read as a positive amount decode to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*a = FromFloat(v)
	case string:
		*a = Parse(v)
	default:
		*a = 0
	}
	return nil
}
