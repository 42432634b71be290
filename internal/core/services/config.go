package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/saifahn/dendron/internal/core/domain"
)

// Notion export config keys.
const (
	KeyConnectionID  = "connection_id"
	KeyParentPageID  = "parent_page_id"
	KeyRatePerSecond = "rate_per_second"
	KeyBurst         = "burst"
)

// Defaults for the Notion export throttle. Notion allows an average of
// three requests per second per integration.
const (
	DefaultRatePerSecond = 3.0
	DefaultBurst         = 1
)

// ExportConfig is the validated configuration of an export pipeline.
type ExportConfig struct {
	// ConnectionID names the destination connection holding the API token.
	ConnectionID string
	// ParentPageID is the page under which exported notes are created.
	ParentPageID string
	// RatePerSecond is the sustained request rate to the destination.
	RatePerSecond float64
	// Burst is the maximum number of requests issued back to back.
	Burst int
}

// Values renders the config as raw key-value pairs for validation.
func (c ExportConfig) Values() map[string]string {
	values := map[string]string{
		KeyConnectionID: c.ConnectionID,
		KeyParentPageID: c.ParentPageID,
	}
	if c.RatePerSecond != 0 {
		values[KeyRatePerSecond] = strconv.FormatFloat(c.RatePerSecond, 'f', -1, 64)
	}
	if c.Burst != 0 {
		values[KeyBurst] = strconv.Itoa(c.Burst)
	}
	return values
}

// NotionExportSchema declares the configuration fields of the Notion exporter.
func NotionExportSchema() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         KeyConnectionID,
			Label:       "Connection ID",
			Description: "ID of the Notion connection to use",
			Type:        domain.ConfigString,
			Required:    true,
		},
		{
			Key:         KeyParentPageID,
			Label:       "Parent Page ID",
			Description: "ID of a Notion page to export all selected notes underneath",
			Type:        domain.ConfigString,
			Required:    true,
		},
		{
			Key:         KeyRatePerSecond,
			Label:       "Requests Per Second",
			Description: "Maximum sustained request rate to the Notion API",
			Default:     strconv.FormatFloat(DefaultRatePerSecond, 'f', -1, 64),
			Type:        domain.ConfigFloat,
		},
		{
			Key:         KeyBurst,
			Label:       "Burst",
			Description: "Requests allowed back to back before throttling applies",
			Default:     strconv.Itoa(DefaultBurst),
			Type:        domain.ConfigInt,
		},
	}
}

// ValidateConfig checks values against a declared schema.
// Every missing required key and every malformed typed value is reported.
func ValidateConfig(schema []domain.ConfigKey, values map[string]string) error {
	var missingKeys []string
	var errs []error

	for _, key := range schema {
		value, exists := values[key.Key]
		if !exists || value == "" {
			if key.Required {
				missingKeys = append(missingKeys, key.Key)
			}
			continue
		}

		switch key.Type {
		case domain.ConfigInt:
			if _, err := strconv.Atoi(value); err != nil {
				errs = append(errs, fmt.Errorf("%s: expected integer, got %q", key.Key, value))
			}
		case domain.ConfigFloat:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				errs = append(errs, fmt.Errorf("%s: expected number, got %q", key.Key, value))
			}
		case domain.ConfigString, "":
		}
	}

	if len(missingKeys) > 0 {
		errs = append([]error{fmt.Errorf("missing required config keys: %v", missingKeys)}, errs...)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// ParseExportConfig validates raw values and applies defaults.
func ParseExportConfig(values map[string]string) (ExportConfig, error) {
	if err := ValidateConfig(NotionExportSchema(), values); err != nil {
		return ExportConfig{}, err
	}

	cfg := ExportConfig{
		ConnectionID:  values[KeyConnectionID],
		ParentPageID:  values[KeyParentPageID],
		RatePerSecond: DefaultRatePerSecond,
		Burst:         DefaultBurst,
	}
	// Typed values were checked by ValidateConfig.
	if v := values[KeyRatePerSecond]; v != "" {
		cfg.RatePerSecond, _ = strconv.ParseFloat(v, 64)
	}
	if v := values[KeyBurst]; v != "" {
		cfg.Burst, _ = strconv.Atoi(v)
	}

	if err := cfg.validateLimits(); err != nil {
		return ExportConfig{}, err
	}
	return cfg, nil
}

func (c ExportConfig) validateLimits() error {
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, KeyRatePerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, KeyBurst)
	}
	return nil
}
