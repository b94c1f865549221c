package validator

import (
	"strings"
	"unicode/utf8"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ErrorEnvelope is the body of every 400 response.
type ErrorEnvelope struct {
	ErrorsMessages []FieldError `json:"errorsMessages"`
}

// FormatErrors wraps errs unchanged into the error envelope. A nil list is
// rendered as an empty JSON array rather than null.
func FormatErrors(errs []FieldError) ErrorEnvelope {
	if errs == nil {
		errs = []FieldError{}
	}
	return ErrorEnvelope{ErrorsMessages: errs}
}

// Validator accumulates field errors in the order they are found.
type Validator struct {
	Errors []FieldError
}

// New is a helper which creates a new Validator instance with no errors.
func New() *Validator {
	return &Validator{}
}

// Valid returns true if the Errors list doesn't contain any entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Has reports whether an error has already been recorded for field.
func (v *Validator) Has(field string) bool {
	for _, e := range v.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// AddError adds an error message to the list, as long as no entry already
// exists for the given field.
func (v *Validator) AddError(field, message string) {
	if v.Has(field) {
		return
	}
	v.Errors = append(v.Errors, FieldError{Message: message, Field: field})
}

// Check adds an error message to the list only if a validation check is not 'ok'.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// In returns true if a specific value is in a list of values.
func In[T comparable](value T, list ...T) bool {
	for i := range list {
		if value == list[i] {
			return true
		}
	}
	return false
}

// NotBlank returns true if s holds anything other than whitespace.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxChars returns true if s contains no more than n characters.
func MaxChars(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

// Between returns true if lo <= value <= hi.
func Between(value, lo, hi int) bool {
	return value >= lo && value <= hi
}
