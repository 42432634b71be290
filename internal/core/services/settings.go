package services

import (
	"fmt"
	"strconv"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	notionSection   = "notion"
	keyNotionAPIKey = "api_key"
)

// SettingsService reads and writes exporter settings in the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// ExportConfig resolves the export configuration. Stored values are
// used as the base and non-empty overrides (typically CLI flags) win.
func (s *SettingsService) ExportConfig(overrides map[string]string) (ExportConfig, error) {
	values := make(map[string]string)
	if s.configStore != nil {
		for k, v := range s.configStore.Section(notionSection) {
			values[k] = v
		}
	}
	for k, v := range overrides {
		if v != "" {
			values[k] = v
		}
	}
	return ParseExportConfig(values)
}

// APIKey returns the stored token for a connection. A connection-specific
// key (notion.connections.<id>.api_key) takes precedence over notion.api_key.
func (s *SettingsService) APIKey(connectionID string) (string, error) {
	if s.configStore == nil {
		return "", domain.ErrAuthRequired
	}
	if connectionID != "" {
		key := fmt.Sprintf("%s.connections.%s.%s", notionSection, connectionID, keyNotionAPIKey)
		if token := s.configStore.GetString(key); token != "" {
			return token, nil
		}
	}
	if token := s.configStore.GetString(notionSection + "." + keyNotionAPIKey); token != "" {
		return token, nil
	}
	return "", domain.ErrAuthRequired
}

// Set stores a single notion setting after checking it against the schema.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if key == keyNotionAPIKey {
		return s.configStore.Set(notionSection+"."+key, value)
	}

	var field *domain.ConfigKey
	schema := NotionExportSchema()
	for i := range schema {
		if schema[i].Key == key {
			field = &schema[i]
			break
		}
	}
	if field == nil {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	stored, err := typedValue(*field, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(notionSection+"."+key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Get returns the stored value of a notion setting as a string.
func (s *SettingsService) Get(key string) (string, bool) {
	if s.configStore == nil {
		return "", false
	}
	v, ok := s.configStore.Section(notionSection)[key]
	return v, ok
}

// Schema describes the settings the exporter accepts.
func (s *SettingsService) Schema() []domain.ConfigKey {
	return NotionExportSchema()
}

func typedValue(field domain.ConfigKey, value string) (any, error) {
	switch field.Type {
	case domain.ConfigInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: expected integer, got %q", domain.ErrInvalidInput, field.Key, value)
		}
		return int64(n), nil
	case domain.ConfigFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: expected number, got %q", domain.ErrInvalidInput, field.Key, value)
		}
		return f, nil
	default:
		return value, nil
	}
}
