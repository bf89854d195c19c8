package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(Defaults(), cfg)
}

func Test_Load_reads_overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".parsegen.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
variant = "lr1"
trace = true
table_column_width = 20
`), 0o644))

	cfg, err := Load(path)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("lr1", cfg.Variant)
	assert.True(cfg.Trace)
	assert.Equal(20, cfg.TableColumnWidth)
}

func Test_Load_rejects_bad_variant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".parsegen.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`variant = "bogus"`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
