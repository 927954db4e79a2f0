// Package config собирает параметры запуска из значений по умолчанию,
// файла конфигурации и переменных окружения ZOC_*.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gitter-badger/zoc/internal/engine"
	"github.com/spf13/viper"
)

// Config - параметры одного запуска.
type Config struct {
	Seed     int64  `mapstructure:"seed"`
	Scenario string `mapstructure:"scenario"`
	Registry string `mapstructure:"registry"`

	Log    LogConfig    `mapstructure:"log"`
	Replay ReplayConfig `mapstructure:"replay"`
	AI     AIConfig     `mapstructure:"ai"`
	Match  MatchConfig  `mapstructure:"match"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ReplayConfig struct {
	Dir    string `mapstructure:"dir"`
	Record bool   `mapstructure:"record"`
}

type AIConfig struct {
	MaxCommandsPerTurn int `mapstructure:"max_commands_per_turn"`
}

type MatchConfig struct {
	MaxRounds int `mapstructure:"max_rounds"`
}

func setDefaults() {
	viper.SetDefault("seed", 0)
	viper.SetDefault("scenario", "")
	viper.SetDefault("registry", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("replay.dir", "./replays")
	viper.SetDefault("replay.record", false)

	viper.SetDefault("ai.max_commands_per_turn", 64)
	viper.SetDefault("match.max_rounds", 30)
}

// Load читает конфигурацию. Если path пуст, ищется zoc.yaml|json в текущем
// каталоге и в ./configs; отсутствие такого файла не ошибка. Явно
// указанный файл обязан существовать.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("ZOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("zoc")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет значения, которые нельзя исправить молча.
func (c *Config) Validate() error {
	if c.AI.MaxCommandsPerTurn <= 0 {
		return fmt.Errorf("ai.max_commands_per_turn must be positive, got %d", c.AI.MaxCommandsPerTurn)
	}
	if c.Match.MaxRounds <= 0 {
		return fmt.Errorf("match.max_rounds must be positive, got %d", c.Match.MaxRounds)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// EngineConfig - параметры движка. Нулевое зерно означает случайное.
func (c *Config) EngineConfig() engine.Config {
	ec := engine.NewConfig()
	if c.Seed != 0 {
		ec.Seed = c.Seed
	}
	ec.MaxAICommandsPerTurn = c.AI.MaxCommandsPerTurn
	return ec
}
