package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// formatGlobs maps a configured format name to the patterns it matches.
var formatGlobs = map[string][]string{
	"markdown": {"**/*.md", "**/*.markdown"},
	"html":     {"**/*.html", "**/*.htm"},
}

// defaultExcludeLines filters repository boilerplate that shows up next to
// posts but should never be published.
var defaultExcludeLines = []string{
	"README*",
	"LICENSE*",
	"CONTRIBUTING*",
	"CHANGELOG*",
	"CODE_OF_CONDUCT*",
	".git/",
	".github/",
	"node_modules/",
	"drafts/",
}

// Source enumerates candidate post files under a directory, filtered by a
// format allow-list and gitignore-style exclusion rules.
type Source struct {
	dir     string
	globs   []string
	exclude *gitignore.GitIgnore
}

// NewSource builds a Source for dir. formats names must come from the
// config's enumerated set; extraExcludes are appended to the defaults.
func NewSource(dir string, formats []string, extraExcludes []string) (*Source, error) {
	var globs []string
	for _, f := range formats {
		patterns, ok := formatGlobs[f]
		if !ok {
			return nil, fmt.Errorf("unknown format %q", f)
		}
		globs = append(globs, patterns...)
	}

	lines := make([]string, 0, len(defaultExcludeLines)+len(extraExcludes))
	lines = append(lines, defaultExcludeLines...)
	lines = append(lines, extraExcludes...)

	return &Source{
		dir:     dir,
		globs:   globs,
		exclude: gitignore.CompileIgnoreLines(lines...),
	}, nil
}

// Discover walks the directory and returns matching files in sorted path
// order so downstream planning output is deterministic.
func (s *Source) Discover(ctx context.Context) ([]*File, error) {
	var files []*File

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		format, ok := s.matchFormat(relPath)
		if !ok {
			return nil
		}
		if s.exclude.MatchesPath(relPath) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", relPath, err)
		}

		files = append(files, &File{
			Path:   relPath,
			Format: format,
			Raw:    raw,
		})
		return nil
	}

	if err := filepath.WalkDir(s.dir, walkFn); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (s *Source) matchFormat(relPath string) (Format, bool) {
	for _, glob := range s.globs {
		if ok, _ := doublestar.Match(glob, relPath); ok {
			switch filepath.Ext(relPath) {
			case ".html", ".htm":
				return FormatHTML, true
			default:
				return FormatMarkdown, true
			}
		}
	}
	return 0, false
}

// Load discovers and parses everything in one pass, skipping nothing: a file
// that fails to parse fails the enumeration, since a half-read batch would
// produce a misleading plan.
func (s *Source) Load(ctx context.Context) ([]*Item, error) {
	files, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(files))
	for _, f := range files {
		item, err := Parse(f)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
