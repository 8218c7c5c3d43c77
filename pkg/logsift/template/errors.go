package template

import "fmt"

// ValidationError represents a catalog-level validation error, such as an
// unsupported version number or an empty template list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// EntryError represents an error in an individual catalog entry.
type EntryError struct {
	Index       int    // 0-based index of the entry in the catalog
	Description string // entry description (may be empty)
	Field       string
	Message     string
}

func (e *EntryError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("template %q: %s: %s", e.Description, e.Field, e.Message)
	}
	return fmt.Sprintf("template[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// TemplateError reports that a pattern could not be compiled into a usable
// Template: malformed syntax, no capture groups, or a field list that does
// not line up with the pattern's capture arity.
type TemplateError struct {
	Pattern string
	Message string
	Cause   error // underlying error, e.g. a regexp syntax error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid template %q: %s: %v", e.Pattern, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid template %q: %s", e.Pattern, e.Message)
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through
// TemplateError.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}
