package fieldsafe

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindGeneric, "generic"},
		{KindEmailShape, "email"},
		{KindPhoneShape, "phone"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q; want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"generic", KindGeneric, false},
		{"", KindGeneric, false},
		{"email", KindEmailShape, false},
		{"phone", KindPhoneShape, false},
		{"ssn", KindGeneric, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseKind(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestKind_HasFallback(t *testing.T) {
	if KindGeneric.HasFallback() {
		t.Error("KindGeneric should not have a fallback")
	}
	if !KindEmailShape.HasFallback() {
		t.Error("KindEmailShape should have a fallback")
	}
	if !KindPhoneShape.HasFallback() {
		t.Error("KindPhoneShape should have a fallback")
	}
}

func TestMapField(t *testing.T) {
	f := MapField(Descriptor{FieldName: "Email", RawPattern: `\S+`})

	record := map[string]string{"Email": "alice@example.com"}
	if got := f.Get(record); got != "alice@example.com" {
		t.Errorf("Get = %q; want alice@example.com", got)
	}

	// Absent key reads as empty
	if got := f.Get(map[string]string{}); got != "" {
		t.Errorf("Get on absent key = %q; want empty", got)
	}

	// Wrong record type reads as empty
	if got := f.Get(42); got != "" {
		t.Errorf("Get on non-map record = %q; want empty", got)
	}
}

func TestSchema_Order(t *testing.T) {
	s := NewSchema(
		MapField(Descriptor{FieldName: "A"}),
		MapField(Descriptor{FieldName: "B"}),
		MapField(Descriptor{FieldName: "C"}),
	)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", s.Len())
	}

	want := []string{"A", "B", "C"}
	for i, f := range s.Fields() {
		if f.Descriptor.FieldName != want[i] {
			t.Errorf("field %d = %q; want %q", i, f.Descriptor.FieldName, want[i])
		}
	}
}
