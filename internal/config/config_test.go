package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Equal(t, ":8080", Default().Addr())
	assert.False(t, Default().AnalyticsEnabled())
	assert.True(t, Default().DefaultAdminCredentials())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
mode: debug
scene:
  fps: 24
  poster_width: 800
  poster_height: 400
retention: 720h
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("DATABASE_PATH", "visits.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 24, cfg.Scene.FPS)
	assert.Equal(t, 800, cfg.Scene.PosterWidth)
	assert.Equal(t, 720*time.Hour, cfg.Retention)
	assert.True(t, cfg.AnalyticsEnabled())
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCENE_FPS=60\nCONTENT_WATCH=true\n"), 0o644))
	t.Setenv("SCENE_FPS", "")
	t.Setenv("CONTENT_WATCH", "")
	// godotenv never overrides variables that are already set, even empty
	// ones, so unset them for this test.
	os.Unsetenv("SCENE_FPS")
	os.Unsetenv("CONTENT_WATCH")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Scene.FPS)
	assert.True(t, cfg.Watch)
}

func TestEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"fps":       {"SCENE_FPS": "fast"},
		"watch":     {"CONTENT_WATCH": "sometimes"},
		"retention": {"ANALYTICS_RETENTION": "forever"},
	}
	for name, env := range cases {
		cfg := Default()
		err := cfg.applyEnv(func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		})
		assert.Error(t, err, name)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = "http"
	cfg.Mode = "loud"
	cfg.Scene.FPS = 500
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, err.Error(), "fps")
}
