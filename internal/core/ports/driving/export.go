package driving

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// Exporter exports documents to a remote destination.
type Exporter interface {
	// ExportMany exports every document and reports the aggregate outcome.
	// It never returns early: each document ends up in either
	// Created or Errors of the result.
	ExportMany(ctx context.Context, docs []domain.Document) *domain.AggregateResult

	// ExportOne exports a single document.
	ExportOne(ctx context.Context, doc domain.Document) *domain.AggregateResult

	// ConfigSchema describes the configuration fields the exporter accepts.
	ConfigSchema() []domain.ConfigKey
}
