package structs

type ConfigView struct {
	Identity string  `json:"ap_name"`
	Fields   []Field `json:"fields"`
}

type Field struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Type    ParameterType `json:"type"`
	Min     int           `json:"min"`
	Max     int           `json:"max"`
	Value   string        `json:"value"`
	Options []FieldOption `json:"options,omitempty"`
}

type FieldOption struct {
	Value string `json:"v"`
	Label string `json:"l"`
}
