// Package docs serves the bridge's static integration guides and renders
// the live scopes reference. Guides are markdown files embedded at build
// time, each starting with a YAML header naming its slug and title.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sync"
)

// URIPrefix is the MCP resource URI prefix for every document.
const URIPrefix = "oauth2://docs/"

// MIMEType is the content type of every document.
const MIMEType = "text/markdown"

//go:embed guides/*.md
var guides embed.FS

// Document is one static guide.
type Document struct {
	Slug        string
	Title       string
	Description string
	Body        string
}

// URI returns the resource URI the document is published under.
func (d Document) URI() string {
	return URIPrefix + d.Slug
}

// Library holds the parsed guides, ordered by slug.
type Library struct {
	docs []Document
}

// Load parses every embedded guide. A guide without a header or slug is
// an error, as is a duplicate slug.
func Load() (*Library, error) {
	return load(guides, "guides")
}

func load(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading guides: %w", err)
	}

	lib := &Library{}
	seen := make(map[string]bool)

	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}

		fm, body := parseFrontmatter(content)
		if fm == nil || fm.Slug == "" {
			return nil, fmt.Errorf("guide %s has no frontmatter slug", e.Name())
		}

		if seen[fm.Slug] {
			return nil, fmt.Errorf("duplicate guide slug %q", fm.Slug)
		}

		seen[fm.Slug] = true

		lib.docs = append(lib.docs, Document{
			Slug:        fm.Slug,
			Title:       fm.Title,
			Description: fm.Description,
			Body:        string(body),
		})
	}

	slices.SortFunc(lib.docs, func(a, b Document) int {
		switch {
		case a.Slug < b.Slug:
			return -1
		case a.Slug > b.Slug:
			return 1
		}

		return 0
	})

	return lib, nil
}

var defaultLibrary = sync.OnceValue(func() *Library {
	lib, err := Load()
	if err != nil {
		panic(fmt.Sprintf("embedded guides: %v", err))
	}

	return lib
})

// Default returns the library of embedded guides. The guides are
// compiled in, so a parse failure is a build defect and panics.
func Default() *Library {
	return defaultLibrary()
}

// Get returns the guide with the given slug.
func (l *Library) Get(slug string) (Document, bool) {
	for _, d := range l.docs {
		if d.Slug == slug {
			return d, true
		}
	}

	return Document{}, false
}

// Documents returns every guide in slug order.
func (l *Library) Documents() []Document {
	return slices.Clone(l.docs)
}

// Slugs returns the slug of every guide in order.
func (l *Library) Slugs() []string {
	out := make([]string, len(l.docs))
	for i, d := range l.docs {
		out[i] = d.Slug
	}

	return out
}
