package secrets

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedSecrets is a name -> SecretRecord mapping that round-trips JSON
// object member order. encoding/json maps shuffle keys, which would break the
// listing and export contract that secrets appear in insertion order.
type orderedSecrets struct {
	names   []string
	records map[string]SecretRecord
}

func newOrderedSecrets() orderedSecrets {
	return orderedSecrets{records: make(map[string]SecretRecord)}
}

// loaded reports whether the container was populated from JSON. A store file
// without a "secrets" member leaves the records map nil.
func (s *orderedSecrets) loaded() bool {
	return s.records != nil
}

// Get returns the record for name, if present. Names are case-sensitive.
func (s *orderedSecrets) Get(name string) (SecretRecord, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

// Set inserts or replaces the record for name. A replacement keeps the
// original insertion position; a new name appends.
func (s *orderedSecrets) Set(name string, rec SecretRecord) {
	if s.records == nil {
		s.records = make(map[string]SecretRecord)
	}
	if _, exists := s.records[name]; !exists {
		s.names = append(s.names, name)
	}
	s.records[name] = rec
}

// Delete removes the record for name, reporting whether it existed.
func (s *orderedSecrets) Delete(name string) bool {
	if _, exists := s.records[name]; !exists {
		return false
	}
	delete(s.records, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the secret names in insertion order.
func (s *orderedSecrets) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of secrets.
func (s *orderedSecrets) Len() int {
	return len(s.names)
}

// MarshalJSON writes the mapping as a JSON object with members in insertion
// order.
func (s orderedSecrets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		recJSON, err := json.Marshal(s.records[name])
		if err != nil {
			return nil, err
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')
		buf.Write(recJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object member by member, preserving the order in
// which names appear in the file.
func (s *orderedSecrets) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("secrets must be a JSON object")
	}

	s.names = nil
	s.records = make(map[string]SecretRecord)

	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("secret name must be a string")
		}

		var rec SecretRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		s.Set(name, rec)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
