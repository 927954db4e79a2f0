package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir переводит тест в пустой каталог, чтобы поиск zoc.yaml ничего не нашел.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "", cfg.Scenario)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "./replays", cfg.Replay.Dir)
	assert.False(t, cfg.Replay.Record)
	assert.Equal(t, 64, cfg.AI.MaxCommandsPerTurn)
	assert.Equal(t, 30, cfg.Match.MaxRounds)
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "zoc.yaml")
	data := "seed: 42\nlog:\n  level: debug\n  format: json\nreplay:\n  record: true\nai:\n  max_commands_per_turn: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Replay.Record)
	assert.Equal(t, 8, cfg.AI.MaxCommandsPerTurn)
	assert.Equal(t, 30, cfg.Match.MaxRounds)

	ec := cfg.EngineConfig()
	assert.Equal(t, int64(42), ec.Seed)
	assert.Equal(t, 8, ec.MaxAICommandsPerTurn)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("ZOC_SEED", "7")
	t.Setenv("ZOC_MATCH_MAX_ROUNDS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 5, cfg.Match.MaxRounds)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "zoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestEngineConfig_RandomSeed(t *testing.T) {
	cfg := &Config{AI: AIConfig{MaxCommandsPerTurn: 3}}
	ec := cfg.EngineConfig()
	assert.NotZero(t, ec.Seed)
	assert.Equal(t, 3, ec.MaxAICommandsPerTurn)
}
