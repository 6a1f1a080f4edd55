package bind

import (
	"webconfig/internal/store"
	"webconfig/internal/structs"
)

const (
	SaveField    = "SAVE"
	RestartField = "RST"
)

// Fields is a set of submitted form fields. url.Values satisfies it.
type Fields interface {
	Has(key string) bool
	Get(key string) string
}

// Submission applies submitted fields to s. A checkbox that was not submitted
// is unchecked; any other parameter keeps its value unless it was submitted.
// Fields that name no parameter are ignored.
func Submission(fields Fields, s *store.Store) {
	if fields.Has(structs.IdentityKey) {
		s.SetIdentity(fields.Get(structs.IdentityKey))
	}

	for i := 0; i < s.Count(); i++ {
		d := s.Descriptor(i)
		switch d.Type {
		case structs.Checkbox:
			if fields.Has(d.Name) {
				s.SetValue(i, "1")
			} else {
				s.SetValue(i, "0")
			}
		case structs.Text, structs.Password, structs.Number, structs.Date, structs.Range,
			structs.Time, structs.Radio, structs.Select, structs.Color, structs.Unknown:
			if fields.Has(d.Name) {
				s.SetValue(i, fields.Get(d.Name))
			}
		}
	}
}

// SaveRequested reports whether the submission asks for the values to be stored.
func SaveRequested(fields Fields) bool {
	return fields.Has(SaveField) || fields.Has(RestartField)
}

func RestartRequested(fields Fields) bool {
	return fields.Has(RestartField)
}
