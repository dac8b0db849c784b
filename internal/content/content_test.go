package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefault(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, site.Profile.Name)
	assert.NotEmpty(t, site.Projects)
	require.Len(t, site.Posts, 2)
	assert.Equal(t, "streaming-scenes", site.Posts[0].Slug, "posts are newest first")
	assert.Contains(t, string(site.Posts[0].HTML), "<strong>once</strong>")
	assert.Contains(t, string(site.Posts[0].HTML), "<h2")
	assert.Len(t, site.Featured(), 3)
	assert.Len(t, site.Recent(10), 2)
}

func TestPostLookup(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)

	p, err := site.Post("htmx-forms")
	require.NoError(t, err)
	assert.Equal(t, "Contact forms with HTMX and Gin", p.Title)

	_, err = site.Post("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenderSanitizes(t *testing.T) {
	html, err := Render("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script")
	assert.NotContains(t, string(html), "javascript:")
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no name":  "profile: {}\n",
		"dup slug": "profile: {name: x}\nposts:\n  - {slug: a}\n  - {slug: a}\n",
		"no slug":  "profile: {name: x}\nprojects:\n  - {title: t}\n",
		"bad yaml": "profile: [",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func writeSite(t *testing.T, path, name string) {
	t.Helper()
	doc := "profile:\n  name: " + name + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	writeSite(t, path, "first")

	s, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "first", s.Site().Profile.Name)

	writeSite(t, path, "second")
	require.NoError(t, s.Reload())
	assert.Equal(t, "second", s.Site().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: ["), 0o644))
	assert.Error(t, s.Reload())
	assert.Equal(t, "second", s.Site().Profile.Name)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	writeSite(t, path, "before")
	s, err := NewStore(path, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, s) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	assert.Eventually(t, func() bool {
		// Keep writing until the watcher has registered; the interval is
		// longer than the debounce so each write gets its own reload.
		writeSite(t, path, "after")
		return strings.EqualFold(s.Site().Profile.Name, "after")
	}, 10*time.Second, 2*watchDebounce)
}
