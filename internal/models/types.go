package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON stores loosely structured payloads (carrier responses, item snapshots).
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray stores string lists such as tags and image URLs.
type StringArray []string

// Value implements driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// AttributePair is a single chosen variant attribute (e.g. Size=XL).
type AttributePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AttributePairs keeps variant attributes in their display order.
type AttributePairs []AttributePair

// Value implements driver.Valuer.
func (a AttributePairs) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AttributePairs) Scan(value interface{}) error {
	if value == nil {
		*a = AttributePairs{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Get returns the value for key and whether it was present.
func (a AttributePairs) Get(key string) (string, bool) {
	for _, pair := range a {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}
