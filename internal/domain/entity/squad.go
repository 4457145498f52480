package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// WorkerIDs is the squad of workers helping on an order.
//
// Older rows stored the list as a JSON string holding an encoded array, so
// decoding accepts both `["id"]` and `"[\"id\"]"`. Encoding always writes a
// plain array and never null.
type WorkerIDs []uuid.UUID

// Contains reports whether id is on the squad.
func (w WorkerIDs) Contains(id uuid.UUID) bool {
	for _, v := range w {
		if v == id {
			return true
		}
	}
	return false
}

// Dedupe returns the squad without nil or repeated ids, keeping order.
func (w WorkerIDs) Dedupe() WorkerIDs {
	out := make(WorkerIDs, 0, len(w))
	seen := make(map[uuid.UUID]struct{}, len(w))
	for _, id := range w {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Strings returns the ids in text form.
func (w WorkerIDs) Strings() []string {
	out := make([]string, len(w))
	for i, id := range w {
		out[i] = id.String()
	}
	return out
}

func (w WorkerIDs) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]uuid.UUID(w))
}

func (w *WorkerIDs) UnmarshalJSON(data []byte) error {
	ids, err := decodeWorkerIDs(data)
	if err != nil {
		return err
	}
	*w = ids
	return nil
}

// Scan implements sql.Scanner for WorkerIDs
func (w *WorkerIDs) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*w = WorkerIDs{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan WorkerIDs: unsupported type %T", value)
	}

	ids, err := decodeWorkerIDs(data)
	if err != nil {
		return err
	}
	*w = ids
	return nil
}

// Value implements driver.Valuer for WorkerIDs
func (w WorkerIDs) Value() (driver.Value, error) {
	data, err := w.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decodeWorkerIDs(data []byte) (WorkerIDs, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return WorkerIDs{}, nil
	}

	// A JSON string wrapping an encoded array.
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decode squad: %w", err)
		}
		return decodeWorkerIDs([]byte(inner))
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode squad: %w", err)
	}
	return WorkerIDs(ids).Dedupe(), nil
}
