package structs

type Option struct {
	Value string
	Label string
}

// Descriptor is the static description of one configurable parameter.
type Descriptor struct {
	Name    string
	Label   string
	Type    ParameterType
	Min     int
	Max     int
	Options []Option
}
