package fieldsafe

import "fmt"

// Kind classifies the shape a pattern is expected to recognize.
// Recognized shapes have a deterministic automaton fallback; Generic
// patterns do not, so a Generic pattern that cannot run on the primary
// matcher is a hard error.
type Kind int

// Supported field shapes.
const (
	// KindGeneric is an arbitrary pattern with no automaton fallback.
	KindGeneric Kind = iota
	// KindEmailShape is backed by the email-shape automaton.
	KindEmailShape
	// KindPhoneShape is backed by the phone-shape automaton.
	KindPhoneShape
)

// String returns the kind name as used in schema files.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindEmailShape:
		return "email"
	case KindPhoneShape:
		return "phone"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a schema-file kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "generic", "":
		return KindGeneric, nil
	case "email":
		return KindEmailShape, nil
	case "phone":
		return KindPhoneShape, nil
	default:
		return KindGeneric, fmt.Errorf("unknown field kind %q", s)
	}
}

// HasFallback returns true if the kind has a deterministic automaton
// that can stand in for the primary matcher.
func (k Kind) HasFallback() bool {
	return k == KindEmailShape || k == KindPhoneShape
}

// Descriptor declares the pattern attached to a single field.
// It is pure data: created once at schema declaration time, read on
// every validation call, never mutated.
type Descriptor struct {
	// FieldName scopes error messages and diagnostic events.
	FieldName string

	// RawPattern is the declared pattern. It is implicitly anchored
	// before use so a partial match never passes.
	RawPattern string

	// Kind selects the automaton fallback, if any.
	Kind Kind

	// MinLen and MaxLen bound the value length, checked before any
	// pattern work. Zero means unbounded. Minimum-length enforcement
	// deliberately lives here rather than inside the phone automaton,
	// which accepts after a single digit.
	MinLen int
	MaxLen int
}

// Field binds a Descriptor to an accessor for one field of a record.
// Accessors are registered explicitly per record type; there is no
// reflection-driven discovery at validation time.
type Field struct {
	Descriptor Descriptor

	// Get extracts the field's current value from a record.
	// An absent value is reported as the empty string.
	Get func(record any) string
}

// MapField builds a Field whose accessor reads Descriptor.FieldName
// from a map[string]string record. Records of any other type, and
// absent keys, read as empty.
func MapField(d Descriptor) Field {
	name := d.FieldName
	return Field{
		Descriptor: d,
		Get: func(record any) string {
			m, ok := record.(map[string]string)
			if !ok {
				return ""
			}
			return m[name]
		},
	}
}

// Schema is the static registration table for one record type: an
// ordered list of field bindings. Fields are evaluated, and errors
// reported, in declaration order.
type Schema struct {
	fields []Field
}

// NewSchema builds a Schema from field bindings in declaration order.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make([]Field, len(fields))}
	copy(s.fields, fields)
	return s
}

// Fields returns the bindings in declaration order.
// The returned slice must not be modified.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}
