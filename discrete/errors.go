package discrete

import "fmt"

// OptionError reports an input value outside a Switcher's allowed option
// list. This is a configuration/data error: it is raised fast and never
// retried.
type OptionError struct {
	// Owner is the model owning the switched parameter.
	Owner string
	// Param is the parameter name feeding the switcher.
	Param string
	// Value is the offending input value.
	Value float64
	// Options is the allowed option set.
	Options []float64
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("discrete: option %g is invalid for %s.%s; options are %v",
		e.Value, e.Owner, e.Param, e.Options)
}
