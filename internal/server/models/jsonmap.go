package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
)

// JSONMap is a free-form property bag, stored as jsonb in PostgreSQL.
type JSONMap map[string]any

// Value implements driver.Valuer. A nil map is stored as an empty object.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
	out := JSONMap{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Clone returns a shallow copy of m. Nested values are shared, which is
// fine as long as stored maps are never mutated in place.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
