package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("unsupported source type for StringArray")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// ScoreMap handles the JSONB category-score document stored on sessions.
type ScoreMap map[string]float64

// Scan implements the Scanner interface for ScoreMap
func (m *ScoreMap) Scan(src interface{}) error {
	if src == nil {
		*m = ScoreMap{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("unsupported source type for ScoreMap")
	}
	return json.Unmarshal(source, m)
}

// Value implements the Valuer interface for ScoreMap
func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
