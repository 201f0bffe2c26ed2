package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/chzzk-go/pkg/chzzk"
)

var configEnvKeys = []string{
	"CHZZK_BASE_URL", "CHZZK_HTTP_TIMEOUT_MS", "CHZZK_USER_AGENT", "CHZZK_CONCURRENCY",
	"CHZZK_NID_SES", "CHZZK_NID_AUT", "CHZZK_NID_JKL",
	"CHZZK_WATCH_INTERVAL_MS", "CHZZK_WATCH_MIN_INTERVAL_MS",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
}

// isolateEnv clears every variable Load reads and points the default path at
// an empty temp dir.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, chzzk.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultHTTPTimeoutMS, cfg.API.TimeoutMS)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Nil(t, cfg.AuthOrNil())
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "chzzk", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[api]\ntimeout_ms = 2500\n"), 0o600))

	got, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.API.TimeoutMS)
}

func TestLoad_File(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
[api]
base_url = "http://localhost:8080"
user_agent = "bot/1.0"

[auth]
nid_ses = "ses"
nid_aut = "aut"
nid_jkl = "jkl"

[watch]
min_interval_ms = 5000

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "bot/1.0", cfg.API.UserAgent)
	assert.Equal(t, 5000, cfg.Watch.MinIntervalMS)
	assert.Equal(t, DefaultWatchIntervalMS, cfg.Watch.DefaultIntervalMS)

	auth := cfg.AuthOrNil()
	require.NotNil(t, auth)
	assert.Equal(t, "NID_SES=ses; NID_AUT=aut; NID_JKL=jkl", auth.CookieHeader())

	lc := cfg.LoggingConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, 10, lc.MaxSizeMB)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "[api]\ntimeout_ms = 2500\n[logging]\nlevel = \"info\"\n")

	t.Setenv("CHZZK_HTTP_TIMEOUT_MS", "750")
	t.Setenv("CHZZK_NID_SES", "s")
	t.Setenv("CHZZK_NID_AUT", "a")
	t.Setenv("CHZZK_NID_JKL", "j")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_COMPRESS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.API.TimeoutMS)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Compress)
	assert.Equal(t, &chzzk.Auth{NIDSes: "s", NIDAut: "a", NIDJkl: "j"}, cfg.AuthOrNil())
}

func TestLoad_InvalidEnvIntKeepsValue(t *testing.T) {
	isolateEnv(t)
	t.Setenv("CHZZK_HTTP_TIMEOUT_MS", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPTimeoutMS, cfg.API.TimeoutMS)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown key", "[api]\nbase = \"x\"\n", "parse config"},
		{"bad toml", "[api\n", "parse config"},
		{"partial auth", "[auth]\nnid_ses = \"only\"\n", "auth requires all"},
		{"zero timeout", "[api]\ntimeout_ms = 0\n", "timeout_ms must be positive"},
		{"negative concurrency", "[api]\nconcurrency = -1\n", "concurrency must be positive"},
		{"zero watch interval", "[watch]\nmin_interval_ms = 0\n", "watch intervals"},
		{"empty base url", "[api]\nbase_url = \"\"\n", "base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolateEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open config")
}

func TestWatchInterval(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10*time.Second, cfg.WatchInterval(0))
	assert.Equal(t, 2*time.Second, cfg.WatchInterval(500*time.Millisecond))
	assert.Equal(t, 30*time.Second, cfg.WatchInterval(30*time.Second))
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.Auth = chzzk.Auth{NIDSes: "s", NIDAut: "a", NIDJkl: "j"}

	red := cfg.Redacted()
	assert.Equal(t, "********", red.Auth.NIDSes)
	assert.Equal(t, "********", red.Auth.NIDJkl)
	assert.Equal(t, "s", cfg.Auth.NIDSes)

	assert.Empty(t, Default().Redacted().Auth.NIDAut)
}
