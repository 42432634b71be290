package notion

import (
	"strings"

	"github.com/jomei/notionapi"

	"github.com/saifahn/dendron/internal/core/domain"
)

const (
	// MaxTextRunes is the longest content Notion accepts in one rich text object.
	MaxTextRunes = 2000

	// MaxNestingDepth is how many block levels a single request may carry.
	// Deeper children are lifted to the deepest allowed level.
	MaxNestingDepth = 3

	plainText = "plain text"
)

// languages maps common fence labels to Notion code languages.
var languages = map[string]string{
	"":           plainText,
	"text":       plainText,
	"txt":        plainText,
	"plaintext":  plainText,
	"sh":         "shell",
	"zsh":        "shell",
	"console":    "shell",
	"bash":       "bash",
	"shell":      "shell",
	"js":         "javascript",
	"javascript": "javascript",
	"jsx":        "javascript",
	"ts":         "typescript",
	"tsx":        "typescript",
	"typescript": "typescript",
	"py":         "python",
	"python":     "python",
	"go":         "go",
	"golang":     "go",
	"rs":         "rust",
	"rust":       "rust",
	"rb":         "ruby",
	"ruby":       "ruby",
	"java":       "java",
	"kotlin":     "kotlin",
	"c":          "c",
	"cpp":        "c++",
	"c++":        "c++",
	"cs":         "c#",
	"csharp":     "c#",
	"json":       "json",
	"yml":        "yaml",
	"yaml":       "yaml",
	"toml":       "toml",
	"md":         "markdown",
	"markdown":   "markdown",
	"html":       "html",
	"css":        "css",
	"scss":       "scss",
	"sql":        "sql",
	"graphql":    "graphql",
	"dockerfile": "docker",
	"docker":     "docker",
	"diff":       "diff",
	"mermaid":    "mermaid",
	"swift":      "swift",
	"php":        "php",
	"lua":        "lua",
	"xml":        "xml",
}

// codeLanguage returns the Notion language for a fence label. Unknown
// labels fall back to plain text, which Notion always accepts.
func codeLanguage(label string) string {
	if lang, ok := languages[strings.ToLower(strings.TrimSpace(label))]; ok {
		return lang
	}
	return plainText
}

// toBlocks maps a block tree to Notion blocks starting at the given depth.
func toBlocks(blocks []domain.Block, depth int) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]

		var children, lifted []notionapi.Block
		if len(b.Children) > 0 {
			if depth+1 < MaxNestingDepth {
				children = toBlocks(b.Children, depth+1)
			} else {
				lifted = toBlocks(b.Children, depth)
			}
		}

		out = append(out, toBlock(b, children))
		out = append(out, lifted...)
	}
	return out
}

func toBlock(b *domain.Block, children []notionapi.Block) notionapi.Block {
	rt := richText(b.RichText)

	switch b.Type {
	case domain.BlockHeading1:
		return &notionapi.Heading1Block{
			BasicBlock: basic(notionapi.BlockTypeHeading1),
			Heading1:   notionapi.Heading{RichText: rt},
		}
	case domain.BlockHeading2:
		return &notionapi.Heading2Block{
			BasicBlock: basic(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: rt},
		}
	case domain.BlockHeading3:
		return &notionapi.Heading3Block{
			BasicBlock: basic(notionapi.BlockTypeHeading3),
			Heading3:   notionapi.Heading{RichText: rt},
		}
	case domain.BlockBulleted:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: rt, Children: children},
		}
	case domain.BlockNumbered:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: rt, Children: children},
		}
	case domain.BlockToDo:
		return &notionapi.ToDoBlock{
			BasicBlock: basic(notionapi.BlockTypeToDo),
			ToDo:       notionapi.ToDo{RichText: rt, Checked: b.Checked, Children: children},
		}
	case domain.BlockCode:
		return &notionapi.CodeBlock{
			BasicBlock: basic(notionapi.BlockTypeCode),
			Code:       notionapi.Code{RichText: rt, Language: codeLanguage(b.Language)},
		}
	case domain.BlockQuote:
		return &notionapi.QuoteBlock{
			BasicBlock: basic(notionapi.BlockTypeQuote),
			Quote:      notionapi.Quote{RichText: rt, Children: children},
		}
	case domain.BlockDivider:
		return &notionapi.DividerBlock{
			BasicBlock: basic(notionapi.BlockTypeDivider),
			Divider:    notionapi.Divider{},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: rt, Children: children},
		}
	}
}

func basic(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// richText maps spans to Notion rich text objects.
func richText(spans []domain.Span) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(spans))
	for _, s := range spans {
		text := &notionapi.Text{Content: s.Text}
		if s.Link != "" {
			text.Link = &notionapi.Link{Url: s.Link}
		}

		rt := notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: text,
		}
		if s.Bold || s.Italic || s.Strikethrough || s.Code {
			rt.Annotations = &notionapi.Annotations{
				Bold:          s.Bold,
				Italic:        s.Italic,
				Strikethrough: s.Strikethrough,
				Code:          s.Code,
			}
		}
		out = append(out, rt)
	}
	return out
}
