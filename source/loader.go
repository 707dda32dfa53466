package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/gpsrgen/vocabulary"
)

// Paths names the location of each reference document. Each value is a file
// path or a doublestar pattern, relative to the loader's base directory
// unless absolute.
type Paths struct {
	Names     string
	Locations string
	Rooms     string
	Objects   string
}

// Get returns the configured path for kind.
func (p Paths) Get(kind vocabulary.Kind) string {
	switch kind {
	case vocabulary.KindNames:
		return p.Names
	case vocabulary.KindLocations:
		return p.Locations
	case vocabulary.KindRooms:
		return p.Rooms
	case vocabulary.KindObjects:
		return p.Objects
	default:
		return ""
	}
}

// Loader reads reference documents from disk.
type Loader struct {
	baseDir   string
	converter *Converter
	logger    *slog.Logger
}

// NewLoader creates a loader resolving relative paths against baseDir.
func NewLoader(baseDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if baseDir == "" {
		baseDir = "."
	}
	return &Loader{
		baseDir:   baseDir,
		converter: NewConverter(),
		logger:    logger,
	}
}

// BaseDir returns the directory relative paths are resolved against.
func (l *Loader) BaseDir() string {
	return l.baseDir
}

// Resolve expands pattern to the files it names, sorted. Supports both
// plain paths and recursive wildcards (**).
func (l *Loader) Resolve(pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrDocumentNotFound)
	}

	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, pattern)
	}

	if !containsGlob(pattern) {
		info, err := os.Stat(full)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, full)
			}
			return nil, fmt.Errorf("stat %s: %w", full, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrDocumentNotFound, full)
		}
		return []string{full}, nil
	}

	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrDocumentNotFound, full)
	}

	sort.Strings(files)
	return files, nil
}

// Load reads every file named by pattern into one document. HTML files are
// converted to markdown; files are joined with a blank line.
func (l *Loader) Load(kind vocabulary.Kind, pattern string) (*Document, error) {
	files, err := l.Resolve(pattern)
	if err != nil {
		return nil, fmt.Errorf("load %s document: %w", kind, err)
	}

	parts := make([]string, 0, len(files))
	for _, path := range files {
		text, err := l.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s document: %w", kind, err)
		}
		parts = append(parts, text)
	}

	content := strings.Join(parts, "\n\n")
	doc := &Document{
		Kind:    kind,
		Paths:   files,
		Content: content,
		Hash:    ContentHash([]byte(content)),
	}

	l.logger.Debug("Loaded document",
		"kind", string(kind),
		"files", len(files),
		"bytes", len(content))

	return doc, nil
}

// LoadAll loads the four reference documents in vocabulary.Kinds order. The
// first missing document aborts the load.
func (l *Loader) LoadAll(paths Paths) ([]*Document, error) {
	docs := make([]*Document, 0, 4)
	for _, kind := range vocabulary.Kinds() {
		doc, err := l.Load(kind, paths.Get(kind))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Matcher returns a predicate reporting whether a file belongs to one of the
// configured documents. Glob patterns also match files created later.
func (l *Loader) Matcher(paths Paths) func(path string) bool {
	var patterns []string
	for _, kind := range vocabulary.Kinds() {
		pattern := paths.Get(kind)
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(l.baseDir, pattern)
		}
		if abs, err := filepath.Abs(pattern); err == nil {
			pattern = abs
		}
		patterns = append(patterns, pattern)
	}

	return func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		for _, pattern := range patterns {
			if pattern == abs {
				return true
			}
			if containsGlob(pattern) {
				if ok, _ := doublestar.PathMatch(pattern, abs); ok {
					return true
				}
			}
		}
		return false
	}
}

func (l *Loader) readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if MimeTypeFromExtension(filepath.Ext(path)) != "text/html" {
		return string(content), nil
	}

	markdown, err := l.converter.Convert(content)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	return markdown, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
