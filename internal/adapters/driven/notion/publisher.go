package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/logger"
)

// RateLimitBackoff is how long a limiter is told to pause after Notion
// answers with HTTP 429. The API does not surface Retry-After through
// the client, so a fixed pause is used.
const RateLimitBackoff = time.Second

// Ensure Publisher implements the interface.
var _ driven.PagePublisher = (*Publisher)(nil)

// pageService is the subset of notionapi.PageService the publisher uses.
type pageService interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// blockService is the subset of notionapi.BlockService the publisher uses.
type blockService interface {
	AppendChildren(
		ctx context.Context,
		id notionapi.BlockID,
		req *notionapi.AppendBlockChildrenRequest,
	) (*notionapi.AppendBlockChildrenResponse, error)
}

// Publisher creates Notion pages under a parent page.
type Publisher struct {
	pages   pageService
	blocks  blockService
	backoff driven.BackoffRecorder
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithBackoffRecorder reports rate limit responses to the given recorder,
// usually the limiter shared by the export pipeline.
func WithBackoffRecorder(r driven.BackoffRecorder) Option {
	return func(p *Publisher) {
		p.backoff = r
	}
}

// New creates a publisher authenticated with an integration token.
func New(token string, opts ...Option) *Publisher {
	client := notionapi.NewClient(notionapi.Token(token))
	return newPublisher(client.Page, client.Block, opts...)
}

func newPublisher(pages pageService, blocks blockService, opts ...Option) *Publisher {
	p := &Publisher{pages: pages, blocks: blocks}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreatePage creates a page with its title and blocks and returns the
// new page's ID.
func (p *Publisher) CreatePage(ctx context.Context, page domain.Page) (string, error) {
	if page.ParentID == "" {
		return "", fmt.Errorf("%w: parent page ID is required", domain.ErrInvalidInput)
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(page.ParentID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: richText(splitTitle(page.Title)),
			},
		},
		Children: toBlocks(page.Blocks, 0),
	}

	created, err := p.pages.Create(ctx, req)
	if err != nil {
		return "", p.classify("create page", err)
	}
	logger.Debug("Created Notion page %s (%q)", created.ID, page.Title)
	return string(created.ID), nil
}

// AppendBlocks appends blocks to the end of an existing page.
func (p *Publisher) AppendBlocks(ctx context.Context, pageID string, blocks []domain.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	req := &notionapi.AppendBlockChildrenRequest{
		Children: toBlocks(blocks, 0),
	}
	if _, err := p.blocks.AppendChildren(ctx, notionapi.BlockID(pageID), req); err != nil {
		return p.classify("append blocks", err)
	}
	logger.Debug("Appended %d blocks to Notion page %s", len(blocks), pageID)
	return nil
}

// classify wraps an API error with the matching domain error and reports
// rate limiting to the backoff recorder.
func (p *Publisher) classify(op string, err error) error {
	switch {
	case IsRateLimited(err):
		if p.backoff != nil {
			p.backoff.RecordRateLimitError(RateLimitBackoff)
		}
		return fmt.Errorf("%w: notion: %s: %w", domain.ErrRateLimited, op, err)
	case IsUnauthorized(err):
		return fmt.Errorf("%w: notion: %s: %w", domain.ErrAuthRequired, op, err)
	case IsNotFound(err):
		return fmt.Errorf("%w: notion: %s: %w", domain.ErrNotFound, op, err)
	default:
		return fmt.Errorf("notion: %s: %w", op, err)
	}
}

// splitTitle keeps a long title within the per-span limit.
func splitTitle(title string) []domain.Span {
	runes := []rune(title)
	var spans []domain.Span
	for len(runes) > MaxTextRunes {
		spans = append(spans, domain.Span{Text: string(runes[:MaxTextRunes])})
		runes = runes[MaxTextRunes:]
	}
	if len(runes) > 0 {
		spans = append(spans, domain.Span{Text: string(runes)})
	}
	return spans
}
