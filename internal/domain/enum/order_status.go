package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus is the workflow stage of a garment order.
type OrderStatus int

const (
	OrderStatusAssigned   OrderStatus = 1
	OrderStatusInProgress OrderStatus = 2
	OrderStatusQACheck    OrderStatus = 3
	OrderStatusReady      OrderStatus = 4
	OrderStatusCollected  OrderStatus = 5 // collected, waiting for closure
	OrderStatusClosed     OrderStatus = 6
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusAssigned:   "Assigned",
	OrderStatusInProgress: "In Progress",
	OrderStatusQACheck:    "QA Check",
	OrderStatusReady:      "Ready",
	OrderStatusCollected:  "Collected",
	OrderStatusClosed:     "Closed",
}

// OrderStatuses lists every status in workflow order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusAssigned, OrderStatusInProgress, OrderStatusQACheck,
		OrderStatusReady, OrderStatusCollected, OrderStatusClosed,
	}
}

// Valid reports whether s is one of the six known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

// Open reports whether the order still counts as active work.
func (s OrderStatus) Open() bool {
	return s != OrderStatusClosed
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseOrderStatus accepts either a status name or its numeric code.
func ParseOrderStatus(v string) (OrderStatus, error) {
	v = strings.TrimSpace(v)
	for s, name := range orderStatusNames {
		if strings.EqualFold(name, v) {
			return s, nil
		}
	}
	var code int
	if _, err := fmt.Sscanf(v, "%d", &code); err == nil && OrderStatus(code).Valid() {
		return OrderStatus(code), nil
	}
	return 0, fmt.Errorf("invalid order status %q", v)
}

// MarshalJSON encodes the numeric code so clients keep the 1-6 contract.
func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		if !OrderStatus(i).Valid() {
			return fmt.Errorf("invalid order status %d", i)
		}
		*s = OrderStatus(i)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusAssigned
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int32:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
