package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsangkit/cjdict/internal/config"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `tables:
  cangjie3: /data/cangjie3.txt
  cangjie5: /data/cangjie5.txt
  code_first: true
dictionary:
  name: My Cangjie 倉頡
  icon: CJ
  separator: ;
unihan:
  database: /data/Unihan_DictionaryLikeData.txt
  cache_db: /data/unihan_cache.sqlite
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "/data/cangjie3.txt", cfg.Tables.Cangjie3)
	require.True(t, cfg.Tables.CodeFirst)
	require.Equal(t, "My Cangjie 倉頡", cfg.Dictionary.Name)
	require.Equal(t, ";", cfg.Dictionary.Separator)
	require.Equal(t, "/data/unihan_cache.sqlite", cfg.Unihan.CacheDB)
	require.Empty(t, cfg.Dictionary.MenuName)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()
	_, err := config.LoadConfig(t.TempDir())
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Tables.Cangjie5 = "cj5.txt"
	cfg.Dictionary.ShortName = "CJ Dict"

	require.NoError(t, config.SaveConfig(dir, cfg))
	loaded, err := config.LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
