package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/core/ports/driving"
	"github.com/saifahn/dendron/internal/logger"
)

// Ensure ExportPipeline implements the interface.
var _ driving.Exporter = (*ExportPipeline)(nil)

// MaxBlocksPerRequest is the number of child blocks Notion accepts in
// a single create or append call.
const MaxBlocksPerRequest = 100

// ledgerTimeout bounds the ledger write that follows a batch.
const ledgerTimeout = 10 * time.Second

// itemResult is the slot a single document's outcome is written into.
type itemResult struct {
	outcome domain.SubmissionOutcome
	err     error
}

// ExportPipeline converts documents to pages and submits them to a
// destination under a shared rate limit.
type ExportPipeline struct {
	publisher driven.PagePublisher
	converter driven.BlockConverter
	limiter   driven.RateLimiter
	store     driven.ExportStore
	config    ExportConfig

	newRunID func() string
	now      func() time.Time
}

// ExportOption configures optional pipeline behaviour.
type ExportOption func(*ExportPipeline)

// WithExportStore records every run in the given ledger.
func WithExportStore(store driven.ExportStore) ExportOption {
	return func(p *ExportPipeline) {
		p.store = store
	}
}

// WithClock overrides the clock used for ledger timestamps.
func WithClock(now func() time.Time) ExportOption {
	return func(p *ExportPipeline) {
		p.now = now
	}
}

// WithRunIDs overrides run ID generation.
func WithRunIDs(fn func() string) ExportOption {
	return func(p *ExportPipeline) {
		p.newRunID = fn
	}
}

// NewExportPipeline creates an export pipeline. The limiter is shared by
// every submission the pipeline issues.
func NewExportPipeline(
	publisher driven.PagePublisher,
	converter driven.BlockConverter,
	limiter driven.RateLimiter,
	cfg ExportConfig,
	opts ...ExportOption,
) (*ExportPipeline, error) {
	if publisher == nil || converter == nil || limiter == nil {
		return nil, fmt.Errorf("%w: publisher, converter and limiter are required", domain.ErrInvalidInput)
	}
	if err := ValidateConfig(NotionExportSchema(), cfg.Values()); err != nil {
		return nil, err
	}

	p := &ExportPipeline{
		publisher: publisher,
		converter: converter,
		limiter:   limiter,
		config:    cfg,
		newRunID:  func() string { return uuid.New().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ConfigSchema describes the configuration fields the exporter accepts.
func (p *ExportPipeline) ConfigSchema() []domain.ConfigKey {
	return NotionExportSchema()
}

// ExportOne exports a single document.
func (p *ExportPipeline) ExportOne(ctx context.Context, doc domain.Document) *domain.AggregateResult {
	return p.ExportMany(ctx, []domain.Document{doc})
}

// ExportMany converts every document, submits the conversions
// concurrently and partitions the outcomes. A failed document never
// stops its siblings.
func (p *ExportPipeline) ExportMany(ctx context.Context, docs []domain.Document) *domain.AggregateResult {
	startedAt := p.now()
	logger.Section("Export")
	logger.Info("Exporting %d documents under %s", len(docs), p.config.ParentPageID)

	results := make([]itemResult, len(docs))

	var g errgroup.Group
	for i := range docs {
		conv, err := p.convert(ctx, docs[i])
		if err != nil {
			results[i].err = &domain.ItemError{DocumentID: docs[i].ID, Stage: domain.StageConvert, Err: err}
			continue
		}
		g.Go(func() error {
			remoteID, err := p.submit(ctx, conv)
			if err != nil {
				results[i].err = &domain.ItemError{DocumentID: conv.DocumentID, Stage: domain.StageSubmit, Err: err}
				return nil
			}
			results[i].outcome = domain.SubmissionOutcome{DocumentID: conv.DocumentID, RemoteID: remoteID}
			return nil
		})
	}
	// Submissions capture their own failures, so Wait only joins.
	_ = g.Wait()

	created := make([]domain.SubmissionOutcome, 0, len(docs))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			logger.Warn("Failed to export %v", r.err)
			errs = append(errs, r.err)
			continue
		}
		logger.Debug("Exported %s as %s", r.outcome.DocumentID, r.outcome.RemoteID)
		created = append(created, r.outcome)
	}

	result := domain.NewAggregateResult(created, errs)
	p.record(ctx, result, docs, results, startedAt)

	logger.Info("Export complete: %d created, %d failed", len(result.Created), len(result.Errors))
	return result
}

// convert maps a document body to blocks and wraps it with destination metadata.
func (p *ExportPipeline) convert(ctx context.Context, doc domain.Document) (domain.ConversionResult, error) {
	blocks, err := p.converter.Convert(ctx, doc.Body)
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("%w: %w", domain.ErrConversion, err)
	}
	return domain.ConversionResult{
		DocumentID: doc.ID,
		Page: domain.Page{
			ParentID: p.config.ParentPageID,
			Title:    doc.DisplayTitle(),
			Blocks:   blocks,
		},
	}, nil
}

// submit creates the page, then appends any blocks beyond the per-request
// limit. Every remote call first acquires one unit from the limiter.
func (p *ExportPipeline) submit(ctx context.Context, conv domain.ConversionResult) (string, error) {
	page := conv.Page
	first, rest := splitBlocks(page.Blocks, MaxBlocksPerRequest)
	page.Blocks = first

	if err := p.limiter.WaitN(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire rate limit: %w", err)
	}
	remoteID, err := p.publisher.CreatePage(ctx, page)
	if err != nil {
		return "", fmt.Errorf("%w: create page: %w", domain.ErrSubmission, err)
	}

	for len(rest) > 0 {
		var chunk []domain.Block
		chunk, rest = splitBlocks(rest, MaxBlocksPerRequest)

		if err := p.limiter.WaitN(ctx, 1); err != nil {
			return "", fmt.Errorf("acquire rate limit: %w", err)
		}
		if err := p.publisher.AppendBlocks(ctx, remoteID, chunk); err != nil {
			return "", fmt.Errorf("%w: append blocks to page %s: %w", domain.ErrSubmission, remoteID, err)
		}
	}

	return remoteID, nil
}

// record writes the run to the ledger. The write outlives cancellation of
// ctx since the pages already exist at the destination. Ledger failures
// are logged only, and RunID is set once the run is stored.
func (p *ExportPipeline) record(
	ctx context.Context,
	result *domain.AggregateResult,
	docs []domain.Document,
	results []itemResult,
	startedAt time.Time,
) {
	if p.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerTimeout)
	defer cancel()

	runID := p.newRunID()
	run := domain.ExportRun{
		ID:        runID,
		StartedAt: startedAt,
		Documents: len(docs),
		Created:   len(result.Created),
		Failed:    len(result.Errors),
	}
	if err := p.store.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to record export run %s: %v", runID, err)
		return
	}
	result.RunID = runID

	if len(result.Created) == 0 {
		return
	}

	exportedAt := p.now()
	records := make([]domain.ExportRecord, 0, len(result.Created))
	for i, r := range results {
		if r.err != nil {
			continue
		}
		records = append(records, domain.ExportRecord{
			RunID:      runID,
			DocumentID: r.outcome.DocumentID,
			RemoteID:   r.outcome.RemoteID,
			Title:      docs[i].DisplayTitle(),
			ExportedAt: exportedAt,
		})
	}
	if err := p.store.SaveRecords(ctx, records); err != nil {
		logger.Warn("Failed to record exported pages for run %s: %v", runID, err)
	}
}

// splitBlocks returns at most n blocks and the remainder.
func splitBlocks(blocks []domain.Block, n int) (head, tail []domain.Block) {
	if len(blocks) <= n {
		return blocks, nil
	}
	return blocks[:n], blocks[n:]
}
