// Package vault loads notes from a directory of markdown files.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saifahn/dendron/internal/converters/markdown"
	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.NoteLoader = (*Loader)(nil)

// noteExt is the extension of note files.
const noteExt = ".md"

// defaultExcludeDirs are directory names skipped while walking a vault.
var defaultExcludeDirs = []string{"node_modules", "vendor"}

// Loader reads notes from files and directories.
type Loader struct {
	excludeDirs map[string]struct{}
}

// NewLoader creates a loader. Hidden directories and the given directory
// names are skipped when walking.
func NewLoader(excludeDirs ...string) *Loader {
	ex := make(map[string]struct{})
	for _, name := range append(defaultExcludeDirs, excludeDirs...) {
		if name == "" {
			continue
		}
		ex[strings.ToLower(name)] = struct{}{}
	}
	return &Loader{excludeDirs: ex}
}

// Load returns a document for every note under the given paths, in
// lexical order per path. A path may be a single file or a directory.
// A file reached twice is loaded once. Notes with unparseable frontmatter
// are skipped with a warning.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]domain.Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{})
	var docs []domain.Document

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}

		doc, err := readNote(abs)
		if errors.Is(err, domain.ErrInvalidInput) {
			logger.Warn("Skipping note %s: %v", abs, err)
			return nil
		}
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && l.skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(path), noteExt) {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	logger.Debug("Loaded %d notes from %d paths", len(docs), len(paths))
	return docs, nil
}

func (l *Loader) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, skip := l.excludeDirs[strings.ToLower(name)]
	return skip
}

// readNote reads a note file. Frontmatter "id" and "title" take priority;
// otherwise the ID is the file stem (the Dendron hierarchy name) and the
// title comes from the first H1 or the file name.
func readNote(path string) (domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read note %s: %w", path, err)
	}

	fm, body := markdown.SplitFrontmatter(string(content))
	meta := make(map[string]any)
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return domain.Document{}, fmt.Errorf("%w: frontmatter in %s: %w", domain.ErrInvalidInput, path, err)
		}
	}

	id := stringField(meta, "id")
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	title := stringField(meta, "title")
	if title == "" {
		title = markdown.ExtractTitle(body, path)
	}

	return domain.Document{
		ID:       id,
		Title:    title,
		Body:     body,
		URI:      "file://" + filepath.ToSlash(path),
		Metadata: meta,
	}, nil
}

func stringField(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}
