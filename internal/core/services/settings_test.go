package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifahn/dendron/internal/adapters/driven/storage/memory"
	"github.com/saifahn/dendron/internal/core/domain"
)

func TestSettingsService_ExportConfig_FromStore(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("notion.connection_id", "conn")
	_ = store.Set("notion.parent_page_id", "page")
	_ = store.Set("notion.burst", int64(2))

	service := NewSettingsService(store)
	cfg, err := service.ExportConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, "conn", cfg.ConnectionID)
	assert.Equal(t, "page", cfg.ParentPageID)
	assert.Equal(t, 2, cfg.Burst)
	assert.Equal(t, DefaultRatePerSecond, cfg.RatePerSecond)
}

func TestSettingsService_ExportConfig_OverridesWin(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("notion.connection_id", "conn")
	_ = store.Set("notion.parent_page_id", "stored-page")

	service := NewSettingsService(store)
	cfg, err := service.ExportConfig(map[string]string{
		KeyParentPageID:  "flag-page",
		KeyRatePerSecond: "",
	})

	require.NoError(t, err)
	assert.Equal(t, "flag-page", cfg.ParentPageID)
	assert.Equal(t, DefaultRatePerSecond, cfg.RatePerSecond)
}

func TestSettingsService_ExportConfig_Missing(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	_, err := service.ExportConfig(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_APIKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	_, err := service.APIKey("work")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	_ = store.Set("notion.api_key", "secret_default")
	key, err := service.APIKey("work")
	require.NoError(t, err)
	assert.Equal(t, "secret_default", key)

	_ = store.Set("notion.connections.work.api_key", "secret_work")
	key, err = service.APIKey("work")
	require.NoError(t, err)
	assert.Equal(t, "secret_work", key)

	key, err = service.APIKey("")
	require.NoError(t, err)
	assert.Equal(t, "secret_default", key)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyParentPageID, "page"))
	require.NoError(t, service.Set(KeyBurst, "3"))
	require.NoError(t, service.Set(KeyRatePerSecond, "1.5"))
	require.NoError(t, service.Set("api_key", "secret"))

	assert.Equal(t, "page", store.GetString("notion.parent_page_id"))
	assert.Equal(t, 3, store.GetInt("notion.burst"))
	assert.InDelta(t, 1.5, store.GetFloat("notion.rate_per_second"), 1e-9)
	assert.Equal(t, "secret", store.GetString("notion.api_key"))

	v, ok := service.Get(KeyBurst)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("unknown", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyBurst, "many"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyRatePerSecond, "fast"), domain.ErrInvalidInput)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.APIKey("x")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.ErrorIs(t, service.Set(KeyBurst, "1"), domain.ErrNotImplemented)

	_, ok := service.Get(KeyBurst)
	assert.False(t, ok)
}

func TestSettingsService_Schema(t *testing.T) {
	service := NewSettingsService(nil)
	assert.Equal(t, NotionExportSchema(), service.Schema())
}
