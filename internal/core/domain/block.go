package domain

// BlockType identifies the kind of content block.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading1  BlockType = "heading_1"
	BlockHeading2  BlockType = "heading_2"
	BlockHeading3  BlockType = "heading_3"
	BlockBulleted  BlockType = "bulleted_list_item"
	BlockNumbered  BlockType = "numbered_list_item"
	BlockToDo      BlockType = "to_do"
	BlockCode      BlockType = "code"
	BlockQuote     BlockType = "quote"
	BlockDivider   BlockType = "divider"
)

// Span is a run of inline text sharing the same formatting.
type Span struct {
	Text          string
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
	// Link is the target URL, empty for plain text.
	Link string
}

// Block is a structured content unit. It is the converter's output and
// the publisher's input, so neither side depends on the other.
type Block struct {
	Type     BlockType
	RichText []Span

	// Language is set for code blocks.
	Language string

	// Checked is set for to-do blocks.
	Checked bool

	// Children holds nested blocks (list items only).
	Children []Block
}

// PlainText concatenates the text of all spans.
func (b *Block) PlainText() string {
	var n int
	for _, s := range b.RichText {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range b.RichText {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Page is the payload submitted to a destination for one document.
type Page struct {
	// ParentID is the destination container (e.g. a Notion page ID).
	ParentID string
	Title    string
	Blocks   []Block
}
