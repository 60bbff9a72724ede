package fieldsafe

// Version is the library version.
const Version = "0.1.0"

// SchemaVersion identifies a schema file format revision.
type SchemaVersion string

// Supported schema file versions.
const (
	// SchemaV1 is the initial schema file format.
	SchemaV1 SchemaVersion = "v1"
)

// String returns the version string.
func (v SchemaVersion) String() string {
	return string(v)
}

// IsValid returns true if this is a supported schema file version.
func (v SchemaVersion) IsValid() bool {
	switch v {
	case SchemaV1:
		return true
	default:
		return false
	}
}
