package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses() {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, OrderStatus(0).Valid())
	assert.False(t, OrderStatus(7).Valid())
	assert.Equal(t, "Status(9)", OrderStatus(9).String())
	assert.False(t, OrderStatusClosed.Open())
	assert.True(t, OrderStatusCollected.Open())
}

func TestOrderStatusJSON(t *testing.T) {
	data, err := json.Marshal(OrderStatusQACheck)
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`5`), &s))
	assert.Equal(t, OrderStatusCollected, s)

	require.NoError(t, json.Unmarshal([]byte(`"in progress"`), &s))
	assert.Equal(t, OrderStatusInProgress, s)

	require.NoError(t, json.Unmarshal([]byte(`"6"`), &s))
	assert.Equal(t, OrderStatusClosed, s)

	assert.Error(t, json.Unmarshal([]byte(`0`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"Shipped"`), &s))
}

func TestOrderStatusScan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan(int64(4)))
	assert.Equal(t, OrderStatusReady, s)
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusAssigned, s)
	assert.Error(t, s.Scan("x"))
}

func TestParsers(t *testing.T) {
	assert.Equal(t, RoleOwner, ParseUserRole(" Owner "))
	assert.Equal(t, UserRole(""), ParseUserRole("admin"))

	assert.Equal(t, ExpenseRent, ParseExpenseCategory("rent"))
	assert.Equal(t, ExpenseOther, ParseExpenseCategory(""))
	assert.Equal(t, ExpenseOther, ParseExpenseCategory("Bribes"))

	assert.Equal(t, SystemSuspended, ParseSystemStatus("suspended"))
	assert.Equal(t, SystemActive, ParseSystemStatus("paused"))
}
