package record

import "strings"

// Field is a named free-text input value.
type Field struct {
	Name  string
	Value *string
}

// Require trims every field in place and returns a *ValidationError naming
// the ones left empty. It returns nil when all fields carry text.
func Require(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		*f.Value = strings.TrimSpace(*f.Value)
		if *f.Value == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
