package schema

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"webconfig/internal/structs"
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidName      = errors.New("parameter name is empty")
	ErrReservedName     = errors.New("parameter name is reserved")
	ErrDuplicateName    = errors.New("parameter name is already declared")
)

// Schema is the ordered set of parameter descriptors together with the
// default value of each parameter, index for index.
type Schema struct {
	Descriptors []structs.Descriptor
	Defaults    []string
}

type record struct {
	Name    string                 `json:"name"`
	Label   string                 `json:"label"`
	Type    *structs.ParameterType `json:"type"`
	Min     *int                   `json:"min"`
	Max     *int                   `json:"max"`
	Default json.RawMessage        `json:"default"`
	Options []option               `json:"options"`
}

// option accepts both the short {v, l} form and {value, label}.
type option struct {
	V     *string `json:"v"`
	L     *string `json:"l"`
	Value string  `json:"value"`
	Label string  `json:"label"`
}

func (o option) value() string {
	if o.V != nil {
		return *o.V
	}
	return o.Value
}

func (o option) label() string {
	if o.L != nil {
		return *o.L
	}
	return o.Label
}

// Build decodes a JSON array of parameter records.
//
// The returned schema is always usable. When the text cannot be decoded it is
// empty. Records that exceed the capacity or have an unusable name are left
// out and reported in the returned error, which aggregates every problem found.
func Build(text string) (*Schema, error) {
	s := &Schema{}

	var records []record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return s, errors.Wrap(err, "error decoding parameter description")
	}

	var errs error
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if len(s.Descriptors) == structs.MaxValues {
			errs = multierr.Append(errs, errors.Wrapf(ErrCapacityExceeded,
				"%d parameters declared, only %d kept", len(records), structs.MaxValues))
			break
		}

		name := truncate(r.Name, structs.NameLength)
		switch {
		case name == "":
			errs = multierr.Append(errs, errors.Wrapf(ErrInvalidName, "record %d", i))
			continue
		case name == structs.IdentityKey:
			errs = multierr.Append(errs, errors.Wrapf(ErrReservedName, "record %d: %s", i, name))
			continue
		case seen[name]:
			errs = multierr.Append(errs, errors.Wrapf(ErrDuplicateName, "record %d: %s", i, name))
			continue
		}
		seen[name] = true

		d := structs.Descriptor{
			Name:  name,
			Label: truncate(r.Label, structs.LabelLength),
			Type:  structs.Text,
			Min:   structs.DefaultMin,
			Max:   structs.DefaultMax,
		}
		if r.Type != nil {
			d.Type = *r.Type
			if !d.Type.Valid() {
				d.Type = structs.Unknown
			}
		}
		if r.Min != nil {
			d.Min = *r.Min
		}
		if r.Max != nil {
			d.Max = *r.Max
		}

		for j, o := range r.Options {
			if j == structs.MaxOptions {
				errs = multierr.Append(errs, errors.Wrapf(ErrCapacityExceeded,
					"parameter %s: %d options declared, only %d kept", name, len(r.Options), structs.MaxOptions))
				break
			}
			d.Options = append(d.Options, structs.Option{Value: o.value(), Label: o.label()})
		}

		s.Descriptors = append(s.Descriptors, d)
		s.Defaults = append(s.Defaults, truncate(defaultText(r.Default), structs.ValueLength))
	}

	return s, errs
}

// defaultText renders a JSON default as text. Strings are used as they are,
// other scalars keep their literal JSON form and null means empty.
func defaultText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
