package store

import (
	"strconv"
	"strings"

	"webconfig/internal/schema"
	"webconfig/internal/structs"
)

// Store holds the current value of every parameter, in lockstep with the
// descriptors it was built from, and the device identity.
//
// A Store is not safe for concurrent use.
type Store struct {
	descriptors []structs.Descriptor
	defaults    []string
	values      []string
	identity    string
}

// New creates a store holding the schema defaults.
func New(s *schema.Schema, identity string) *Store {
	st := &Store{identity: identity}
	st.Replace(s)
	return st
}

// Replace rebuilds the descriptor and value sets from s. The identity is kept.
func (s *Store) Replace(sc *schema.Schema) {
	s.descriptors = append([]structs.Descriptor(nil), sc.Descriptors...)
	s.defaults = append([]string(nil), sc.Defaults...)
	s.Reset()
}

// Reset restores every value to its schema default.
func (s *Store) Reset() {
	s.values = append([]string(nil), s.defaults...)
}

func (s *Store) Count() int {
	return len(s.descriptors)
}

// Name returns the name of parameter i, or "" when i is out of range.
func (s *Store) Name(i int) string {
	if i < 0 || i >= len(s.descriptors) {
		return ""
	}
	return s.descriptors[i].Name
}

func (s *Store) Descriptor(i int) structs.Descriptor {
	return s.descriptors[i]
}

func (s *Store) Value(i int) string {
	return s.values[i]
}

func (s *Store) SetValue(i int, v string) {
	s.values[i] = v
}

func (s *Store) Identity() string {
	return s.identity
}

func (s *Store) SetIdentity(v string) {
	s.identity = v
}

// IndexOf returns the index of the parameter called name. The scan runs from
// the last descriptor backwards and the match is exact.
func (s *Store) IndexOf(name string) (int, bool) {
	for i := len(s.descriptors) - 1; i >= 0; i-- {
		if s.descriptors[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// String returns the value of the named parameter, or "" if there is none.
func (s *Store) String(name string) string {
	i, ok := s.IndexOf(name)
	if !ok {
		return ""
	}
	return s.values[i]
}

// Int parses the leading integer of the named value. It returns 0 when the
// value does not start with a number.
func (s *Store) Int(name string) int {
	n, err := strconv.Atoi(leadingNumber(s.String(name), false))
	if err != nil {
		return 0
	}
	return n
}

// Float parses the leading decimal number of the named value, so "3.5 V"
// reads as 3.5. Only digits with an optional sign and fraction are taken.
func (s *Store) Float(name string) float64 {
	f, err := strconv.ParseFloat(leadingNumber(s.String(name), true), 64)
	if err != nil {
		return 0
	}
	return f
}

// leadingNumber returns the prefix of v made of an optional sign, digits and,
// when fraction is set, one '.' followed by more digits.
func leadingNumber(v string, fraction bool) string {
	v = strings.TrimSpace(v)
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	dot := false
	for end < len(v) {
		c := v[end]
		if c == '.' && fraction && !dot {
			dot = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	return v[:end]
}

// Bool is false only for the exact value "0". Absent parameters read as "".
func (s *Store) Bool(name string) bool {
	return s.String(name) != "0"
}

// View returns a JSON friendly copy of descriptors and values.
func (s *Store) View() structs.ConfigView {
	view := structs.ConfigView{Identity: s.identity, Fields: make([]structs.Field, 0, len(s.descriptors))}
	for i, d := range s.descriptors {
		f := structs.Field{
			Name:  d.Name,
			Label: d.Label,
			Type:  d.Type,
			Min:   d.Min,
			Max:   d.Max,
			Value: s.values[i],
		}
		for _, o := range d.Options {
			f.Options = append(f.Options, structs.FieldOption{Value: o.Value, Label: o.Label})
		}
		view.Fields = append(view.Fields, f)
	}
	return view
}
