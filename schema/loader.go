// Package schema loads field validation schemas from YAML rule files.
//
// A schema file declares the record's fields in order:
//
//	version: v1
//	fields:
//	  - name: Email
//	    pattern: '\S+@\S+\.\S+'
//	    kind: email
//	  - name: Phone
//	    pattern: '\+?[0-9][0-9 \-]*'
//	    kind: phone
//	    minLength: 7
//	    maxLength: 20
//
// Loaded schemas bind fields to map[string]string records by name.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	fv "github.com/fieldsafe/validator"
)

type rawSchema struct {
	Version string     `yaml:"version"`
	Fields  []rawField `yaml:"fields"`
}

type rawField struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Kind      string `yaml:"kind"`
	MinLength int    `yaml:"minLength"`
	MaxLength int    `yaml:"maxLength"`
}

// Load parses a YAML schema document. Field order in the file is the
// evaluation and error-reporting order.
func Load(b []byte) (*fv.Schema, error) {
	var raw rawSchema
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	version := fv.SchemaVersion(raw.Version)
	if raw.Version == "" {
		version = fv.SchemaV1
	}
	if !version.IsValid() {
		return nil, fmt.Errorf("unsupported schema version %q", raw.Version)
	}
	if len(raw.Fields) == 0 {
		return nil, errors.New("schema declares no fields")
	}

	fields := make([]fv.Field, 0, len(raw.Fields))
	seen := make(map[string]bool, len(raw.Fields))
	for i, rf := range raw.Fields {
		if rf.Name == "" {
			return nil, fmt.Errorf("field %d: missing name", i)
		}
		if seen[rf.Name] {
			return nil, fmt.Errorf("field %q: declared twice", rf.Name)
		}
		seen[rf.Name] = true

		if rf.Pattern == "" {
			return nil, fmt.Errorf("field %q: missing pattern", rf.Name)
		}
		kind, err := fv.ParseKind(rf.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", rf.Name, err)
		}
		if rf.MinLength < 0 || rf.MaxLength < 0 {
			return nil, fmt.Errorf("field %q: negative length bound", rf.Name)
		}
		if rf.MinLength > 0 && rf.MaxLength > 0 && rf.MinLength > rf.MaxLength {
			return nil, fmt.Errorf("field %q: minLength %d exceeds maxLength %d",
				rf.Name, rf.MinLength, rf.MaxLength)
		}

		fields = append(fields, fv.MapField(fv.Descriptor{
			FieldName:  rf.Name,
			RawPattern: rf.Pattern,
			Kind:       kind,
			MinLen:     rf.MinLength,
			MaxLen:     rf.MaxLength,
		}))
	}

	return fv.NewSchema(fields...), nil
}

// LoadFile reads and parses a YAML schema file.
func LoadFile(path string) (*fv.Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Load(b)
}
