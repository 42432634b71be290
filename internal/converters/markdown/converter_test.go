package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifahn/dendron/internal/core/domain"
)

func convert(t *testing.T, md string) []domain.Block {
	t.Helper()
	blocks, err := New().Convert(context.Background(), md)
	require.NoError(t, err)
	return blocks
}

func TestConvert_Empty(t *testing.T) {
	assert.Empty(t, convert(t, ""))
	assert.Empty(t, convert(t, "\n\n"))
}

func TestConvert_Headings(t *testing.T) {
	blocks := convert(t, "# One\n\n## Two\n\n### Three\n\n#### Four")

	require.Len(t, blocks, 4)
	assert.Equal(t, domain.BlockHeading1, blocks[0].Type)
	assert.Equal(t, "One", blocks[0].PlainText())
	assert.Equal(t, domain.BlockHeading2, blocks[1].Type)
	assert.Equal(t, domain.BlockHeading3, blocks[2].Type)
	assert.Equal(t, domain.BlockHeading3, blocks[3].Type)
	assert.Equal(t, "Four", blocks[3].PlainText())
}

func TestConvert_ParagraphInline(t *testing.T) {
	blocks := convert(t, "Plain **bold** *italic* ~~gone~~ `code` [link](https://example.com)")

	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, domain.BlockParagraph, b.Type)
	assert.Equal(t, "Plain bold italic gone code link", b.PlainText())

	byText := make(map[string]domain.Span)
	for _, s := range b.RichText {
		byText[s.Text] = s
	}
	assert.True(t, byText["bold"].Bold)
	assert.True(t, byText["italic"].Italic)
	assert.True(t, byText["gone"].Strikethrough)
	assert.True(t, byText["code"].Code)
	assert.Equal(t, "https://example.com", byText["link"].Link)
}

func TestConvert_SoftAndHardBreaks(t *testing.T) {
	blocks := convert(t, "line one\nline two  \nline three")

	require.Len(t, blocks, 1)
	assert.Equal(t, "line one line two\nline three", blocks[0].PlainText())
}

func TestConvert_Lists(t *testing.T) {
	md := "- first\n- second\n  - nested\n\n1. one\n2. two\n"
	blocks := convert(t, md)

	require.Len(t, blocks, 4)
	assert.Equal(t, domain.BlockBulleted, blocks[0].Type)
	assert.Equal(t, "first", blocks[0].PlainText())
	assert.Equal(t, domain.BlockBulleted, blocks[1].Type)
	require.Len(t, blocks[1].Children, 1)
	assert.Equal(t, domain.BlockBulleted, blocks[1].Children[0].Type)
	assert.Equal(t, "nested", blocks[1].Children[0].PlainText())
	assert.Equal(t, domain.BlockNumbered, blocks[2].Type)
	assert.Equal(t, "two", blocks[3].PlainText())
}

func TestConvert_TaskList(t *testing.T) {
	blocks := convert(t, "- [ ] todo\n- [x] done\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockToDo, blocks[0].Type)
	assert.False(t, blocks[0].Checked)
	assert.Equal(t, "todo", blocks[0].PlainText())
	assert.Equal(t, domain.BlockToDo, blocks[1].Type)
	assert.True(t, blocks[1].Checked)
}

func TestConvert_CodeBlocks(t *testing.T) {
	blocks := convert(t, "```Go\nfunc main() {}\n```\n\n    indented\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockCode, blocks[0].Type)
	assert.Equal(t, "go", blocks[0].Language)
	assert.Equal(t, "func main() {}", blocks[0].PlainText())
	assert.Equal(t, domain.BlockCode, blocks[1].Type)
	assert.Equal(t, "", blocks[1].Language)
	assert.Equal(t, "indented", blocks[1].PlainText())
}

func TestConvert_QuoteAndDivider(t *testing.T) {
	blocks := convert(t, "> quoted\n> still quoted\n>\n> second para\n\n---\n\nafter")

	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockQuote, blocks[0].Type)
	assert.Equal(t, "quoted still quoted\nsecond para", blocks[0].PlainText())
	assert.Equal(t, domain.BlockDivider, blocks[1].Type)
	assert.Equal(t, domain.BlockParagraph, blocks[2].Type)
}

func TestConvert_Table(t *testing.T) {
	blocks := convert(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, "a | b", blocks[0].PlainText())
	assert.Equal(t, "1 | 2", blocks[1].PlainText())
}

func TestConvert_AutolinkAndImage(t *testing.T) {
	blocks := convert(t, "see https://dendron.so and ![logo](https://img/logo.png)")

	require.Len(t, blocks, 1)
	var links []string
	for _, s := range blocks[0].RichText {
		if s.Link != "" {
			links = append(links, s.Link)
		}
	}
	assert.Equal(t, []string{"https://dendron.so", "https://img/logo.png"}, links)
}

func TestConvert_LeadingThematicBreakIsContent(t *testing.T) {
	blocks := convert(t, "---\nImportant paragraph\n---\nMore text\n")

	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockDivider, blocks[0].Type)
	assert.Equal(t, domain.BlockHeading2, blocks[1].Type)
	assert.Equal(t, "Important paragraph", blocks[1].PlainText())
	assert.Equal(t, "More text", blocks[2].PlainText())
}

func TestConvert_CapsSpansPerBlock(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < MaxSpansPerBlock+10; i++ {
		sb.WriteString("**b** i ")
	}
	blocks := convert(t, sb.String())

	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, domain.BlockParagraph, b.Type)
		assert.LessOrEqual(t, len(b.RichText), MaxSpansPerBlock)
	}
	total := 0
	for _, b := range blocks {
		total += len(b.RichText)
	}
	assert.Equal(t, 2*(MaxSpansPerBlock+10), total)
}

func TestCapSpans_KeepsChildrenOnLastPiece(t *testing.T) {
	spans := make([]domain.Span, MaxSpansPerBlock+1)
	for i := range spans {
		spans[i] = domain.Span{Text: "x", Bold: i%2 == 0}
	}
	child := domain.Block{Type: domain.BlockBulleted, RichText: []domain.Span{{Text: "child"}}}
	in := []domain.Block{{Type: domain.BlockBulleted, RichText: spans, Children: []domain.Block{child}}}

	out := capSpans(in)

	require.Len(t, out, 2)
	assert.Len(t, out[0].RichText, MaxSpansPerBlock)
	assert.Empty(t, out[0].Children)
	assert.Len(t, out[1].RichText, 1)
	assert.Equal(t, []domain.Block{child}, out[1].Children)
}

func TestConvert_SplitsLongText(t *testing.T) {
	long := strings.Repeat("a", MaxSpanRunes*2+10)
	blocks := convert(t, long)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].RichText, 3)
	assert.Len(t, blocks[0].RichText[0].Text, MaxSpanRunes)
	assert.Len(t, blocks[0].RichText[2].Text, 10)
	assert.Equal(t, long, blocks[0].PlainText())
}

func TestConvert_InvalidUTF8(t *testing.T) {
	_, err := New().Convert(context.Background(), "bad \xff byte")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvert_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Convert(ctx, "# hi")
	assert.ErrorIs(t, err, context.Canceled)
}
