package markdown

import (
	"path/filepath"
	"strings"
)

const frontmatterFence = "---"

// SplitFrontmatter separates a leading YAML frontmatter block from the body.
// Content without a closed frontmatter block is returned unchanged as the body.
func SplitFrontmatter(content string) (frontmatter, body string) {
	normalised := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalised, frontmatterFence+"\n") {
		return "", content
	}

	rest := normalised[len(frontmatterFence)+1:]
	// The closing fence may be the very first line when the block is empty.
	if strings.HasPrefix(rest, frontmatterFence+"\n") || rest == frontmatterFence {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, frontmatterFence), "\n")
	}

	end := strings.Index(rest, "\n"+frontmatterFence+"\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n"+frontmatterFence) {
			return rest[:len(rest)-len(frontmatterFence)-1], ""
		}
		return "", content
	}

	return rest[:end], rest[end+len(frontmatterFence)+2:]
}

// ExtractTitle returns the first H1 heading of the body, falling back to
// a title derived from the file name.
func ExtractTitle(body, uri string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return TitleFromFilename(uri)
}

// TitleFromFilename derives a title from the last hierarchy segment of a
// Dendron-style file name: "proj.notion-export.md" becomes "notion export".
func TitleFromFilename(uri string) string {
	name := strings.TrimSuffix(filepath.Base(uri), filepath.Ext(uri))
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
