// Command dendron-export exports Dendron notes to Notion pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/saifahn/dendron/internal/adapters/driven/config/file"
	"github.com/saifahn/dendron/internal/adapters/driven/notion"
	"github.com/saifahn/dendron/internal/adapters/driven/ratelimit"
	"github.com/saifahn/dendron/internal/adapters/driven/storage/sqlite"
	"github.com/saifahn/dendron/internal/adapters/driven/vault"
	"github.com/saifahn/dendron/internal/adapters/driving/cli"
	"github.com/saifahn/dendron/internal/converters/markdown"
	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/core/ports/driving"
	"github.com/saifahn/dendron/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

// envAPIKey supplies the Notion integration token ahead of the config file.
//
//nolint:gosec // G101: environment variable name, not a credential.
const envAPIKey = "NOTION_API_KEY"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open export ledger: %v\n", err)
		return err
	}
	defer store.Close()

	ledger := store.ExportStore()
	settings := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Exporters: newExporterFactory(settings, ledger),
		Notes:     vault.NewLoader(),
		History:   services.NewHistoryService(ledger),
		Settings:  settings,
	})

	return cli.Execute(ctx)
}

// newExporterFactory resolves settings and the API token, then builds a
// pipeline whose publisher feeds 429 responses back into its limiter.
func newExporterFactory(settings *services.SettingsService, ledger driven.ExportStore) driving.ExporterFactory {
	return func(overrides map[string]string) (driving.Exporter, error) {
		cfg, err := settings.ExportConfig(overrides)
		if err != nil {
			return nil, err
		}

		token := os.Getenv(envAPIKey)
		if token == "" {
			token, err = settings.APIKey(cfg.ConnectionID)
			if err != nil {
				return nil, fmt.Errorf("%w: set %s or run \"dendron-export config set api_key <token>\"",
					domain.ErrAuthRequired, envAPIKey)
			}
		}

		limiter, err := ratelimit.NewPerSecond(cfg.RatePerSecond, cfg.Burst)
		if err != nil {
			return nil, err
		}
		publisher := notion.New(token, notion.WithBackoffRecorder(limiter))

		return services.NewExportPipeline(publisher, markdown.New(), limiter, cfg,
			services.WithExportStore(ledger))
	}
}
