package domain

// ConfigType is the value type of a configuration field.
type ConfigType string

const (
	ConfigString ConfigType = "string"
	ConfigInt    ConfigType = "int"
	ConfigFloat  ConfigType = "float"
)

// ConfigKey describes a configuration field for an exporter.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string
	// Label is the human-readable label for display.
	Label string
	// Description explains what this field is for.
	Description string
	// Default is the default value for this field.
	Default string
	// Type is the expected value type. Empty means string.
	Type ConfigType
	// Required indicates whether this field must be provided.
	Required bool
	// Secret indicates whether this field should be masked when displayed.
	Secret bool
}
