package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Measurements is an order's measurement sheet: part name to field to value,
// e.g. {"Coat": {"Chest": 40, "Sleeve": 25}}.
type Measurements map[string]map[string]float64

// Scan implements sql.Scanner for Measurements
func (m *Measurements) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*m = Measurements{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan Measurements: unsupported type %T", value)
	}
	if len(data) == 0 {
		*m = Measurements{}
		return nil
	}

	sheet := Measurements{}
	if err := json.Unmarshal(data, &sheet); err != nil {
		return fmt.Errorf("decode measurements: %w", err)
	}
	*m = sheet
	return nil
}

// Value implements driver.Valuer for Measurements
func (m Measurements) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]map[string]float64(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Prune drops empty parts.
func (m Measurements) Prune() Measurements {
	out := make(Measurements, len(m))
	for part, fields := range m {
		if len(fields) > 0 {
			out[part] = fields
		}
	}
	return out
}
