package structs

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type ParameterType int

// Unknown is the type of a parameter whose declared type is not recognised.
// It binds like Text and renders as an empty block.
const Unknown ParameterType = -1

const (
	Text ParameterType = iota
	Password
	Number
	Date
	Checkbox
	Range
	Time
	Radio
	Select
	Color
)

const (
	MaxValues  = 20
	MaxOptions = 16

	NameLength  = 14
	LabelLength = 39
	ValueLength = 29

	DefaultMin = 0
	DefaultMax = 100

	// IdentityKey names the device network name in forms and in the values file.
	IdentityKey = "apName"
)

var typeNames = map[ParameterType]string{
	Text:     "text",
	Password: "password",
	Number:   "number",
	Date:     "date",
	Checkbox: "checkbox",
	Range:    "range",
	Time:     "time",
	Radio:    "radio",
	Select:   "select",
	Color:    "color",
}

// Valid reports whether t is one of the known parameter types.
func (t ParameterType) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// String returns the HTML input type for t, or "" for an unknown type.
func (t ParameterType) String() string {
	return typeNames[t]
}

func (t ParameterType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

// UnmarshalJSON accepts either the numeric code or the lower-case type name.
func (t *ParameterType) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err == nil {
		*t = ParameterType(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return errors.Wrap(err, "parameter type must be a number or a name")
	}
	*t = Unknown
	for k, v := range typeNames {
		if v == strings.ToLower(name) {
			*t = k
			break
		}
	}
	return nil
}
