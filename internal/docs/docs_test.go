package docs

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter_SplitsHeaderAndBody(t *testing.T) {
	fm, body := parseFrontmatter([]byte("---\nslug: demo\ntitle: Demo\ntags: [a, b]\n---\n# Demo\n\ntext\n"))
	require.NotNil(t, fm)
	assert.Equal(t, "demo", fm.Slug)
	assert.Equal(t, "Demo", fm.Title)
	assert.Equal(t, "# Demo\n\ntext\n", string(body))
}

func TestParseFrontmatter_WindowsLineEndings(t *testing.T) {
	fm, body := parseFrontmatter([]byte("---\r\nslug: demo\r\n---\r\n# Demo"))
	require.NotNil(t, fm)
	assert.Equal(t, "demo", fm.Slug)
	assert.Equal(t, "# Demo", string(body))
}

func TestParseFrontmatter_Missing(t *testing.T) {
	content := []byte("# Just a heading\n")
	fm, body := parseFrontmatter(content)
	assert.Nil(t, fm)
	assert.Equal(t, content, body)
}

func TestParseFrontmatter_NoClosingDelimiter(t *testing.T) {
	fm, _ := parseFrontmatter([]byte("---\nslug: a\nNo closing"))
	assert.Nil(t, fm)
}

func TestParseFrontmatter_InvalidYAML(t *testing.T) {
	fm, _ := parseFrontmatter([]byte("---\n: invalid: yaml: [[\n---\n"))
	assert.Nil(t, fm)
}

func TestLoad_EmbeddedGuides(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"grant-types", "integration-guide"}, lib.Slugs())

	guide, ok := lib.Get("integration-guide")
	require.True(t, ok)
	assert.Equal(t, "OAuth2 Integration Guide", guide.Title)
	assert.Equal(t, "oauth2://docs/integration-guide", guide.URI())
	assert.True(t, strings.HasPrefix(guide.Body, "# OAuth2 Integration Guide"), "body should not include the header")
	assert.Contains(t, guide.Body, "create_client")

	grants, ok := lib.Get("grant-types")
	require.True(t, ok)
	assert.Equal(t, "OAuth2 Grant Types Guide", grants.Title)
	assert.Contains(t, grants.Body, "client_credentials")

	_, ok = lib.Get("nope")
	assert.False(t, ok)
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestLoad_RejectsGuideWithoutSlug(t *testing.T) {
	fsys := fstest.MapFS{
		"g/a.md": {Data: []byte("# no header\n")},
	}
	_, err := load(fsys, "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.md")
}

func TestLoad_RejectsDuplicateSlug(t *testing.T) {
	fsys := fstest.MapFS{
		"g/a.md": {Data: []byte("---\nslug: x\n---\nA\n")},
		"g/b.md": {Data: []byte("---\nslug: x\n---\nB\n")},
	}
	_, err := load(fsys, "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoad_SkipsNonMarkdown(t *testing.T) {
	fsys := fstest.MapFS{
		"g/a.md":      {Data: []byte("---\nslug: a\n---\nA\n")},
		"g/notes.txt": {Data: []byte("ignored")},
	}
	lib, err := load(fsys, "g")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lib.Slugs())
}

func TestScopesReference(t *testing.T) {
	out := ScopesReference([]byte(`[
		{"scope":"openid","description":null,"system":true},
		{"scope":"read:profile","description":"Read profile data","enabled":false,"system":false}
	]`))

	assert.True(t, strings.HasPrefix(out, "# OAuth2 Scopes Reference\n"))
	assert.Contains(t, out, "### `openid`\n\n**System Scope**: Cannot be deleted\n\n---\n\n")
	assert.Contains(t, out, "### `read:profile`\n\nRead profile data\n\n---\n\n")
	assert.Less(t, strings.Index(out, "`openid`"), strings.Index(out, "`read:profile`"), "server order is kept")
	assert.Contains(t, out, "## OpenID Connect Scopes")
	assert.Equal(t, "oauth2://docs/scopes", ScopesURI())
}

func TestScopesReference_Empty(t *testing.T) {
	for _, raw := range []string{"", "[]", "null"} {
		out := ScopesReference([]byte(raw))
		assert.Contains(t, out, "## Available Scopes\n\n## OpenID Connect Scopes", raw)
	}
}

func TestScopesReference_SkipsEntriesWithoutName(t *testing.T) {
	out := ScopesReference([]byte(`[{"description":"orphan"},{"scope":"write:data"}]`))
	assert.NotContains(t, out, "orphan")
	assert.Contains(t, out, "### `write:data`\n\n---\n\n")
}
