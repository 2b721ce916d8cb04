// Package airport holds the read-only airport-code reference set. The set is
// loaded once at startup and injected into every component that validates
// codes; it is never mutated afterwards, so concurrent lookups need no locking.
package airport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Set is an immutable collection of upper-case airport codes.
type Set struct {
	codes map[string]struct{}
}

// NewSet builds a set from explicit codes. Codes are upper-cased and trimmed.
// Mostly useful in tests; production loads from CSV.
func NewSet(codes ...string) *Set {
	s := &Set{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			s.codes[c] = struct{}{}
		}
	}
	return s
}

// LoadCSV reads codes from the given column of a CSV file. The header row is
// kept: reference tables ship without one, and a stray header value can never
// collide with a real upper-case code lookup.
//
// A missing file is not fatal. The process must still come up, so the caller
// gets an empty set (maximally strict: every code invalid) plus the error to
// log.
func LoadCSV(path string, column int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewSet(), fmt.Errorf("open airport reference %q: %w", path, err)
	}
	defer f.Close()

	s := &Set{codes: make(map[string]struct{})}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return NewSet(), fmt.Errorf("read airport reference %q: %w", path, err)
		}
		if column < len(row) {
			code := strings.ToUpper(strings.TrimSpace(row[column]))
			if code != "" {
				s.codes[code] = struct{}{}
			}
		}
	}
	return s, nil
}

// Contains reports whether code is a known airport code. The lookup is
// case-insensitive: the query is upper-cased before matching.
func (s *Set) Contains(code string) bool {
	if s == nil {
		return false
	}
	_, ok := s.codes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Len returns the number of loaded codes.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.codes)
}
