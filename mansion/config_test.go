package mansion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamescout/scout/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

func Test_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.EqualValues(t, &Config{}, cfg)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
address = "https://scout.example.com"
page_size = 40
colour = "blue"
`), 0o644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.EqualValues(t, "https://scout.example.com", cfg.Address)
	assert.EqualValues(t, 40, cfg.PageSize)

	require.NoError(t, os.WriteFile(path, []byte(`address = [1, 2`), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func Test_SaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, SaveConfig(path, &Config{
		Address:  "http://localhost:8080",
		PageSize: 10,
	}))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.EqualValues(t, &Config{
		Address:  "http://localhost:8080",
		PageSize: 10,
	}, cfg)
}

func Test_Resolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveConfig(path, &Config{
		Address:  "http://from-file",
		PageSize: 30,
		DBPath:   filepath.Join(dir, "file.db"),
	}))

	newCtx := func() *Context {
		ctx := NewContext(kingpin.New("scout", "test"))
		ctx.ConfigPath = path
		return ctx
	}

	t.Setenv(EnvAddress, "")
	t.Setenv(EnvToken, "")

	ctx := newCtx()
	require.NoError(t, ctx.Resolve())
	assert.EqualValues(t, "http://from-file", ctx.Address)
	assert.EqualValues(t, 30, ctx.PageSize)
	assert.EqualValues(t, filepath.Join(dir, "file.db"), ctx.DBPath)
	assert.Empty(t, ctx.Token)

	t.Setenv(EnvAddress, "http://from-env")
	t.Setenv(EnvToken, "env-token")
	ctx = newCtx()
	require.NoError(t, ctx.Resolve())
	assert.EqualValues(t, "http://from-env", ctx.Address)
	assert.EqualValues(t, "env-token", ctx.Token)

	ctx = newCtx()
	ctx.Address = "http://from-flag"
	ctx.PageSize = 5
	require.NoError(t, ctx.Resolve())
	assert.EqualValues(t, "http://from-flag", ctx.Address)
	assert.EqualValues(t, 5, ctx.PageSize)

	ctx = NewContext(kingpin.New("scout", "test"))
	ctx.ConfigPath = filepath.Join(dir, "none.toml")
	t.Setenv(EnvAddress, "")
	t.Setenv(database.EnvDataDir, filepath.Join(dir, "data"))
	require.NoError(t, ctx.Resolve())
	assert.EqualValues(t, DefaultAddress, ctx.Address)
	assert.EqualValues(t, DefaultPageSize, ctx.PageSize)
	assert.EqualValues(t, filepath.Join(dir, "data", "db", "scout.db"), ctx.DBPath)
}

func Test_UserAgent(t *testing.T) {
	ctx := NewContext(kingpin.New("scout", "test"))
	ctx.Version = "head"
	assert.EqualValues(t, "scout/head", ctx.UserAgent())

	ctx.Commit = "abc123"
	ctx.UserAgentAddition = "ci"
	assert.EqualValues(t, "scout/abc123 ci", ctx.UserAgent())

	ctx.Address = "http://localhost:9999"
	client := ctx.NewClient("tok")
	assert.EqualValues(t, "http://localhost:9999/api", client.BaseURL)
	assert.EqualValues(t, "scout/abc123 ci", client.UserAgent)
	assert.Equal(t, ctx.HTTPClient, client.HTTPClient)
}
