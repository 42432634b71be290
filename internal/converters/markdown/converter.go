// Package markdown converts markdown note bodies into content blocks.
package markdown

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
)

// MaxSpanRunes is the longest text a single span may carry.
// Notion rejects rich text objects over 2000 characters.
const MaxSpanRunes = 2000

// MaxSpansPerBlock is the most rich text objects a single block may carry.
const MaxSpansPerBlock = 100

// Ensure Converter implements the interface.
var _ driven.BlockConverter = (*Converter)(nil)

// Converter parses CommonMark with GitHub extensions (tables,
// strikethrough, task lists, autolinks) into blocks.
type Converter struct {
	md goldmark.Markdown
}

// New creates a new markdown converter.
func New() *Converter {
	return &Converter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Convert parses markdown and returns the top-level blocks. The input is
// treated as a note body; callers strip frontmatter beforehand.
func (c *Converter) Convert(ctx context.Context, markdown string) ([]domain.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(markdown) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", domain.ErrInvalidInput)
	}

	source := []byte(markdown)
	root := c.md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source}
	return capSpans(w.blocks(root)), nil
}

// walker converts a parsed document tree.
type walker struct {
	source []byte
}

// style is the inline formatting in effect while collecting spans.
type style struct {
	bold, italic, strike, code bool
	link                       string
}

func (s style) span(text string) domain.Span {
	return domain.Span{
		Text:          text,
		Bold:          s.bold,
		Italic:        s.italic,
		Strikethrough: s.strike,
		Code:          s.code,
		Link:          s.link,
	}
}

func (w *walker) blocks(parent ast.Node) []domain.Block {
	var out []domain.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, w.block(n)...)
	}
	return out
}

func (w *walker) block(n ast.Node) []domain.Block {
	switch node := n.(type) {
	case *ast.Heading:
		return []domain.Block{{Type: headingType(node.Level), RichText: w.inline(node)}}

	case *ast.Paragraph, *ast.TextBlock:
		return paragraph(w.inline(node))

	case *ast.List:
		return w.list(node)

	case *ast.FencedCodeBlock:
		lang := strings.ToLower(string(node.Language(w.source)))
		return []domain.Block{codeBlock(w.lines(node), lang)}

	case *ast.CodeBlock:
		return []domain.Block{codeBlock(w.lines(node), "")}

	case *ast.Blockquote:
		return []domain.Block{{Type: domain.BlockQuote, RichText: w.quoteText(node)}}

	case *ast.ThematicBreak:
		return []domain.Block{{Type: domain.BlockDivider}}

	case *ast.HTMLBlock:
		return paragraph(splitLong([]domain.Span{{Text: w.lines(node)}}))

	case *east.Table:
		return w.table(node)

	default:
		return w.blocks(n)
	}
}

// list converts list items. The first text block of an item becomes the
// item's own text; later blocks and nested lists become its children.
func (w *walker) list(list *ast.List) []domain.Block {
	itemType := domain.BlockBulleted
	if list.IsOrdered() {
		itemType = domain.BlockNumbered
	}

	var out []domain.Block
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		b := domain.Block{Type: itemType}
		hasText := false

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			_, isText := c.(*ast.TextBlock)
			_, isPara := c.(*ast.Paragraph)
			if (isText || isPara) && !hasText {
				hasText = true
				if box, ok := c.FirstChild().(*east.TaskCheckBox); ok {
					b.Type = domain.BlockToDo
					b.Checked = box.IsChecked
				}
				b.RichText = w.inline(c)
				continue
			}
			b.Children = append(b.Children, w.block(c)...)
		}
		out = append(out, b)
	}
	return out
}

// quoteText flattens a blockquote's blocks into newline-separated rich text.
func (w *walker) quoteText(quote *ast.Blockquote) []domain.Span {
	var spans []domain.Span
	for c := quote.FirstChild(); c != nil; c = c.NextSibling() {
		var child []domain.Span
		for _, b := range w.block(c) {
			if len(child) > 0 {
				child = append(child, domain.Span{Text: "\n"})
			}
			child = append(child, b.RichText...)
		}
		if len(child) == 0 {
			continue
		}
		if len(spans) > 0 {
			spans = append(spans, domain.Span{Text: "\n"})
		}
		spans = append(spans, child...)
	}
	return splitLong(mergeSpans(spans))
}

// table flattens each row into a paragraph with cells joined by " | ".
func (w *walker) table(table *east.Table) []domain.Block {
	var out []domain.Block
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var spans []domain.Span
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if len(spans) > 0 {
				spans = append(spans, domain.Span{Text: " | "})
			}
			spans = append(spans, w.inline(cell)...)
		}
		out = append(out, paragraph(splitLong(mergeSpans(spans)))...)
	}
	return out
}

func (w *walker) inline(n ast.Node) []domain.Span {
	var spans []domain.Span
	w.collect(n, style{}, &spans)
	spans = mergeSpans(spans)
	if len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
	}
	if last := len(spans) - 1; last >= 0 {
		spans[last].Text = strings.TrimRight(spans[last].Text, "\n ")
		if spans[last].Text == "" {
			spans = spans[:last]
		}
	}
	return splitLong(spans)
}

func (w *walker) collect(parent ast.Node, st style, out *[]domain.Span) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			s := string(node.Segment.Value(w.source))
			switch {
			case node.HardLineBreak():
				s += "\n"
			case node.SoftLineBreak():
				s += " "
			}
			*out = append(*out, st.span(s))

		case *ast.String:
			*out = append(*out, st.span(string(node.Value)))

		case *ast.CodeSpan:
			inner := st
			inner.code = true
			w.collect(node, inner, out)

		case *ast.Emphasis:
			inner := st
			if node.Level >= 2 {
				inner.bold = true
			} else {
				inner.italic = true
			}
			w.collect(node, inner, out)

		case *east.Strikethrough:
			inner := st
			inner.strike = true
			w.collect(node, inner, out)

		case *ast.Link:
			inner := st
			inner.link = string(node.Destination)
			w.collect(node, inner, out)

		case *ast.AutoLink:
			inner := st
			inner.link = string(node.URL(w.source))
			*out = append(*out, inner.span(string(node.Label(w.source))))

		case *ast.Image:
			inner := st
			inner.link = string(node.Destination)
			before := len(*out)
			w.collect(node, inner, out)
			if len(*out) == before {
				*out = append(*out, inner.span(inner.link))
			}

		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				*out = append(*out, st.span(string(seg.Value(w.source))))
			}

		case *east.TaskCheckBox:
			// Consumed by list handling.

		default:
			w.collect(node, st, out)
		}
	}
}

// lines joins the raw source lines of a block node.
func (w *walker) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func headingType(level int) domain.BlockType {
	switch level {
	case 1:
		return domain.BlockHeading1
	case 2:
		return domain.BlockHeading2
	default:
		return domain.BlockHeading3
	}
}

func paragraph(spans []domain.Span) []domain.Block {
	if len(spans) == 0 {
		return nil
	}
	return []domain.Block{{Type: domain.BlockParagraph, RichText: spans}}
}

func codeBlock(code, lang string) domain.Block {
	return domain.Block{
		Type:     domain.BlockCode,
		Language: lang,
		RichText: splitLong([]domain.Span{{Text: code}}),
	}
}

// mergeSpans joins adjacent spans with identical formatting.
func mergeSpans(spans []domain.Span) []domain.Span {
	out := make([]domain.Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && sameStyle(out[last], s) {
			out[last].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

func sameStyle(a, b domain.Span) bool {
	return a.Bold == b.Bold && a.Italic == b.Italic && a.Strikethrough == b.Strikethrough &&
		a.Code == b.Code && a.Link == b.Link
}

// splitLong breaks spans longer than MaxSpanRunes into consecutive spans.
func splitLong(spans []domain.Span) []domain.Span {
	out := make([]domain.Span, 0, len(spans))
	for _, s := range spans {
		runes := []rune(s.Text)
		for len(runes) > MaxSpanRunes {
			part := s
			part.Text = string(runes[:MaxSpanRunes])
			out = append(out, part)
			runes = runes[MaxSpanRunes:]
		}
		if len(runes) > 0 {
			s.Text = string(runes)
			out = append(out, s)
		}
	}
	return out
}

// capSpans splits blocks carrying more than MaxSpansPerBlock spans into
// consecutive blocks of the same type. Children stay with the last piece
// so they still follow the text they were nested under.
func capSpans(blocks []domain.Block) []domain.Block {
	out := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		if len(b.Children) > 0 {
			b.Children = capSpans(b.Children)
		}
		if len(b.RichText) <= MaxSpansPerBlock {
			out = append(out, b)
			continue
		}

		spans, children := b.RichText, b.Children
		for len(spans) > 0 {
			n := min(len(spans), MaxSpansPerBlock)
			piece := b
			piece.RichText = spans[:n:n]
			piece.Children = nil
			spans = spans[n:]
			if len(spans) == 0 {
				piece.Children = children
			}
			out = append(out, piece)
		}
	}
	return out
}
