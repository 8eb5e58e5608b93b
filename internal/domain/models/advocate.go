package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Advocate is one directory record. Every field is always present in JSON.
type Advocate struct {
	ID                int64       `json:"id" yaml:"-"`
	FirstName         string      `json:"firstName" yaml:"firstName"`
	LastName          string      `json:"lastName" yaml:"lastName"`
	City              string      `json:"city" yaml:"city"`
	Degree            string      `json:"degree" yaml:"degree"`
	Specialties       Specialties `json:"specialties" yaml:"specialties"`
	YearsOfExperience int         `json:"yearsOfExperience" yaml:"yearsOfExperience"`
	PhoneNumber       int64       `json:"phoneNumber" yaml:"phoneNumber"`
}

// FullName joins first and last name for display.
func (a Advocate) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Specialties is stored as a JSON array column and always marshals as an array.
type Specialties []string

func (s Specialties) MarshalJSON() ([]byte, error) {
	return s.encode()
}

// Value stores the list as JSON text; every supported dialect accepts text for its JSON column.
func (s Specialties) Value() (driver.Value, error) {
	b, err := s.encode()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// encode keeps &, < and > literal so stored text stays searchable as typed.
func (s Specialties) encode() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(s)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Scan accepts the JSON text drivers hand back as either []byte or string.
func (s *Specialties) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Specialties{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("specialties: unsupported column type %T", src)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*s = Specialties{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("specialties: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

// Join renders the list for flat outputs (PDF cells, plain tables).
func (s Specialties) Join(sep string) string {
	return strings.Join(s, sep)
}
