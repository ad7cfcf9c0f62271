package field

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation failure
type Kind int

const (
	KindEmptyIdentifier Kind = iota + 1
	KindDuplicateIdentifier
	KindOutOfRange
	KindInvalidEnumeration
	KindMissingPointTypeDefault
	KindTemplateNotFound
	KindInvalidValue
)

// Sentinels matched by errors.Is against any *Error of the same kind
var (
	ErrEmptyIdentifier         = errors.New("empty identifier")
	ErrDuplicateIdentifier     = errors.New("duplicate identifier")
	ErrOutOfRange              = errors.New("value out of range")
	ErrInvalidEnumeration      = errors.New("value not in enumeration")
	ErrMissingPointTypeDefault = errors.New("missing point type default")
	ErrTemplateNotFound        = errors.New("template not found")
	ErrInvalidValue            = errors.New("invalid value")
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindEmptyIdentifier:
		return "EmptyIdentifier"
	case KindDuplicateIdentifier:
		return "DuplicateIdentifier"
	case KindOutOfRange:
		return "OutOfRange"
	case KindInvalidEnumeration:
		return "InvalidEnumeration"
	case KindMissingPointTypeDefault:
		return "MissingPointTypeDefault"
	case KindTemplateNotFound:
		return "TemplateNotFound"
	case KindInvalidValue:
		return "InvalidValue"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEmptyIdentifier:
		return ErrEmptyIdentifier
	case KindDuplicateIdentifier:
		return ErrDuplicateIdentifier
	case KindOutOfRange:
		return ErrOutOfRange
	case KindInvalidEnumeration:
		return ErrInvalidEnumeration
	case KindMissingPointTypeDefault:
		return ErrMissingPointTypeDefault
	case KindTemplateNotFound:
		return ErrTemplateNotFound
	default:
		return ErrInvalidValue
	}
}

// Error is one field-level validation failure. Section names the group of
// fields (the dialog tab) the field belongs to.
type Error struct {
	Kind    Kind
	Section string
	Field   string
	Reason  string
	Value   interface{}

	// Min and Max are set for KindOutOfRange
	Min, Max int64
	// Allowed is set for KindInvalidEnumeration
	Allowed []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.Section != "" {
		b.WriteString(e.Section)
		b.WriteString(".")
	}
	b.WriteString(e.Field)
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if p := e.Permitted(); p != "" {
		b.WriteString(" (allowed ")
		b.WriteString(p)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the sentinel for the error's kind
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// Permitted renders the allowed range or enumeration, or "" when the kind
// carries neither.
func (e *Error) Permitted() string {
	switch e.Kind {
	case KindOutOfRange:
		return fmt.Sprintf("[%d, %d]", e.Min, e.Max)
	case KindInvalidEnumeration:
		return "{" + strings.Join(e.Allowed, ", ") + "}"
	}
	return ""
}

// OutOfRange reports a numeric value outside the inclusive range [min, max]
func OutOfRange(name string, value interface{}, min, max int64) *Error {
	return &Error{
		Kind:   KindOutOfRange,
		Field:  name,
		Reason: fmt.Sprintf("value %v out of range", value),
		Value:  value,
		Min:    min,
		Max:    max,
	}
}

// InvalidEnumeration reports a value that is not a member of allowed
func InvalidEnumeration(name string, value interface{}, allowed []string) *Error {
	return &Error{
		Kind:    KindInvalidEnumeration,
		Field:   name,
		Reason:  fmt.Sprintf("value %v not permitted", value),
		Value:   value,
		Allowed: allowed,
	}
}

// InvalidValue reports a value of the wrong kind or one breaking a
// cross-field rule
func InvalidValue(name string, value interface{}, reason string) *Error {
	return &Error{
		Kind:   KindInvalidValue,
		Field:  name,
		Reason: reason,
		Value:  value,
	}
}

// EmptyIdentifier reports a blank identifier
func EmptyIdentifier(name string) *Error {
	return &Error{
		Kind:   KindEmptyIdentifier,
		Field:  name,
		Reason: "identifier must not be empty",
		Value:  "",
	}
}

// DuplicateIdentifier reports an identifier already in use
func DuplicateIdentifier(name, id string) *Error {
	return &Error{
		Kind:   KindDuplicateIdentifier,
		Field:  name,
		Reason: fmt.Sprintf("identifier %q already exists", id),
		Value:  id,
	}
}

// MissingPointTypeDefault reports a point type with no entry in a defaults mapping
func MissingPointTypeDefault(section, pointType string) *Error {
	return &Error{
		Kind:    KindMissingPointTypeDefault,
		Section: section,
		Field:   pointType,
		Reason:  "no default variation for " + pointType,
	}
}

// TemplateNotFound reports an unresolved template name
func TemplateNotFound(name, template string) *Error {
	return &Error{
		Kind:   KindTemplateNotFound,
		Field:  name,
		Reason: fmt.Sprintf("template %q not found", template),
		Value:  template,
	}
}

// Errors is an ordered collection of validation failures from one attempt
type Errors []*Error

// Add appends e when non-nil
func (es *Errors) Add(e *Error) {
	if e != nil {
		*es = append(*es, e)
	}
}

// Append appends every error in more
func (es *Errors) Append(more Errors) {
	*es = append(*es, more...)
}

// InSection sets Section on every error that has none and returns es
func (es Errors) InSection(section string) Errors {
	for _, e := range es {
		if e.Section == "" {
			e.Section = section
		}
	}
	return es
}

// Err returns es as an error, or nil when empty
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// Error joins all messages with "; "
func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Find returns the first error for the given field name
func (es Errors) Find(name string) (*Error, bool) {
	for _, e := range es {
		if e.Field == name {
			return e, true
		}
	}
	return nil, false
}

// OfKind returns the errors with the given kind, in order
func (es Errors) OfKind(k Kind) Errors {
	var out Errors
	for _, e := range es {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// AsErrors extracts the validation errors carried by err
func AsErrors(err error) (Errors, bool) {
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	var e *Error
	if errors.As(err, &e) {
		return Errors{e}, true
	}
	return nil, false
}
