package driving

import "github.com/saifahn/dendron/internal/core/domain"

// SettingsService reads and writes exporter settings.
type SettingsService interface {
	// Get returns a stored setting.
	Get(key string) (string, bool)

	// Set validates and stores a setting.
	Set(key, value string) error

	// Schema describes the settings the exporter accepts.
	Schema() []domain.ConfigKey
}

// ExporterFactory builds an exporter from stored settings. Non-empty
// overrides take precedence over stored values.
type ExporterFactory func(overrides map[string]string) (Exporter, error)
