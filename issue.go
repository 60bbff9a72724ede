package fieldsafe

// IssueSeverity represents the severity of a validation issue.
type IssueSeverity string

const (
	// SeverityError indicates the field value is invalid.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a potential problem that should be reviewed.
	SeverityWarning IssueSeverity = "warning"
	// SeverityInformation indicates informational feedback.
	SeverityInformation IssueSeverity = "information"
)

// IssueCode classifies what went wrong with a field.
type IssueCode string

const (
	// CodeFormat: the value does not match the declared pattern by any
	// method tried (primary or fallback).
	CodeFormat IssueCode = "format"
	// CodePattern: the declared pattern itself is malformed and no
	// recognized-shape fallback exists. A configuration error surfaced
	// at validation time.
	CodePattern IssueCode = "pattern"
	// CodeLength: the value violates the declared length bounds.
	CodeLength IssueCode = "length"
	// CodeProcessing: an unexpected internal condition.
	CodeProcessing IssueCode = "processing"
)

// Issue represents a single field-scoped validation issue.
type Issue struct {
	// Severity of the issue.
	Severity IssueSeverity `json:"severity"`

	// Code identifying the type of issue.
	Code IssueCode `json:"code"`

	// Field is the name of the field in error.
	Field string `json:"field,omitempty"`

	// Diagnostics contains human-readable details about the issue.
	Diagnostics string `json:"diagnostics,omitempty"`
}

// IsError returns true if this issue invalidates the record.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// IsWarning returns true if this is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// String renders the issue the way callers surface it to end users:
// the field name, what class of failure occurred, and why.
func (i Issue) String() string {
	head := ""
	if i.Field != "" {
		head = i.Field + ": "
	}
	switch i.Code {
	case CodeFormat:
		head += "invalid format"
	case CodePattern:
		head += "invalid pattern"
	case CodeLength:
		head += "invalid length"
	default:
		head += string(i.Code)
	}
	if i.Diagnostics != "" {
		head += " (" + i.Diagnostics + ")"
	}
	return head
}

// IssueBuilder provides a fluent API for building issues.
type IssueBuilder struct {
	issue Issue
}

// NewIssue creates a new IssueBuilder.
func NewIssue(severity IssueSeverity, code IssueCode) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			Severity: severity,
			Code:     code,
		},
	}
}

// ErrorIssue creates an error issue builder.
func ErrorIssue(code IssueCode) *IssueBuilder {
	return NewIssue(SeverityError, code)
}

// WarningIssue creates a warning issue builder.
func WarningIssue(code IssueCode) *IssueBuilder {
	return NewIssue(SeverityWarning, code)
}

// At sets the field name.
func (b *IssueBuilder) At(field string) *IssueBuilder {
	b.issue.Field = field
	return b
}

// Diagnostics sets the diagnostic message.
func (b *IssueBuilder) Diagnostics(msg string) *IssueBuilder {
	b.issue.Diagnostics = msg
	return b
}

// Build returns the constructed issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
