package fieldsafe

import "testing"

func TestIssue_IsError(t *testing.T) {
	if !(Issue{Severity: SeverityError}).IsError() {
		t.Error("error severity should be an error")
	}
	if (Issue{Severity: SeverityWarning}).IsError() {
		t.Error("warning severity should not be an error")
	}
	if !(Issue{Severity: SeverityWarning}).IsWarning() {
		t.Error("warning severity should be a warning")
	}
}

func TestIssue_String(t *testing.T) {
	tests := []struct {
		issue Issue
		want  string
	}{
		{
			Issue{Severity: SeverityError, Code: CodeFormat, Field: "Email", Diagnostics: "value does not match the email shape"},
			"Email: invalid format (value does not match the email shape)",
		},
		{
			Issue{Severity: SeverityError, Code: CodePattern, Field: "Code", Diagnostics: "declared pattern does not compile"},
			"Code: invalid pattern (declared pattern does not compile)",
		},
		{
			Issue{Severity: SeverityError, Code: CodeLength, Field: "Phone"},
			"Phone: invalid length",
		},
		{
			Issue{Severity: SeverityError, Code: CodeProcessing, Diagnostics: "boom"},
			"processing (boom)",
		},
	}

	for _, tt := range tests {
		if got := tt.issue.String(); got != tt.want {
			t.Errorf("String() = %q; want %q", got, tt.want)
		}
	}
}

func TestIssueBuilder(t *testing.T) {
	issue := ErrorIssue(CodeFormat).
		At("Email").
		Diagnostics("no at-sign").
		Build()

	if issue.Severity != SeverityError {
		t.Errorf("Severity = %v; want error", issue.Severity)
	}
	if issue.Code != CodeFormat {
		t.Errorf("Code = %v; want format", issue.Code)
	}
	if issue.Field != "Email" {
		t.Errorf("Field = %q; want Email", issue.Field)
	}
	if issue.Diagnostics != "no at-sign" {
		t.Errorf("Diagnostics = %q", issue.Diagnostics)
	}

	warn := WarningIssue(CodeLength).At("Phone").Build()
	if !warn.IsWarning() {
		t.Error("builder should produce a warning")
	}
}
