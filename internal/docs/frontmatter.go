package docs

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the YAML header of an embedded guide.
type Frontmatter struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// parseFrontmatter splits a markdown document into its YAML header and
// the body that follows. Returns a nil header and the unchanged content
// when no well formed header is present.
func parseFrontmatter(content []byte) (*Frontmatter, []byte) {
	if !bytes.HasPrefix(content, []byte("---")) {
		return nil, content
	}

	// Skip the rest of the opening line (could be "---\n" or "---\r\n").
	rest := content[3:]

	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		return nil, content
	}

	rest = rest[idx+1:]

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, content
	}

	block := rest[:end]

	var fm Frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, content
	}

	// Drop the closing delimiter line.
	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}

	return &fm, body
}
