package model

import (
	"bytes"
	"encoding/json"
)

// Sentinel paths for errors not attributable to a specific field.
const (
	PathGeneral = "general"
	PathForm    = "_form"
)

// FieldErrorMap maps a dotted field path to its messages, remembering
// the order paths were first seen. Every failure source (local issues,
// remote error arrays, unexpected errors) is translated into this one
// shape, so display code has a single consumption path.
type FieldErrorMap struct {
	order    []string
	messages map[string][]string
}

// NewFieldErrorMap returns an empty map.
func NewFieldErrorMap() *FieldErrorMap {
	return &FieldErrorMap{messages: make(map[string][]string)}
}

// Add appends a message to the path, registering the path on first use.
func (m *FieldErrorMap) Add(path, message string) {
	if m.messages == nil {
		m.messages = make(map[string][]string)
	}
	if _, seen := m.messages[path]; !seen {
		m.order = append(m.order, path)
	}
	m.messages[path] = append(m.messages[path], message)
}

// Get returns the messages recorded for path, nil when absent.
func (m *FieldErrorMap) Get(path string) []string {
	if m == nil || m.messages == nil {
		return nil
	}
	return m.messages[path]
}

// Paths returns the paths in first-seen order.
func (m *FieldErrorMap) Paths() []string {
	if m == nil {
		return nil
	}
	return m.order
}

// Len returns the number of distinct paths.
func (m *FieldErrorMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Empty reports whether no errors were recorded.
func (m *FieldErrorMap) Empty() bool {
	return m.Len() == 0
}

// MarshalJSON emits an object whose keys follow first-seen path order.
func (m *FieldErrorMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.order) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, path := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.messages[path])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a plain object; key order of the source text is
// not recoverable, so paths are registered in Go map iteration order.
func (m *FieldErrorMap) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.order = nil
	m.messages = make(map[string][]string, len(raw))
	for path, msgs := range raw {
		for _, msg := range msgs {
			m.Add(path, msg)
		}
	}
	return nil
}
