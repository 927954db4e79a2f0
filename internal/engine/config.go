package engine

import "time"

// DefaultMaxAICommandsPerTurn - сколько команд ИИ может выдать за один ход,
// прежде чем движок закончит ход за него.
const DefaultMaxAICommandsPerTurn = 64

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно генератора. От него зависят все броски партии: с тем же
	// зерном, сценарием и командами партия повторяется точно.
	Seed int64

	MaxAICommandsPerTurn int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:                 time.Now().UnixNano(),
		MaxAICommandsPerTurn: DefaultMaxAICommandsPerTurn,
	}
}
