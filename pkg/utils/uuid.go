package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseOptionalUUID parses s, returning nil for blank input.
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseUUIDs parses every entry of list, skipping blanks.
func ParseUUIDs(list []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(list))
	for _, s := range list {
		id, err := ParseOptionalUUID(s)
		if err != nil {
			return nil, err
		}
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids, nil
}
