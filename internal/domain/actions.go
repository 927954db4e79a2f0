package domain

import "strings"

// CommandType - Внутренний числовой идентификатор команды
type CommandType uint8

const (
	CommandUnknown CommandType = iota
	CommandEndTurn
	CommandCreateUnit
	CommandMove
	CommandAttackUnit
)

// Маппинг для конвертации JSON -> Domain
var commandStringToType = map[string]CommandType{
	"END_TURN":    CommandEndTurn,
	"CREATE_UNIT": CommandCreateUnit,
	"MOVE":        CommandMove,
	"ATTACK_UNIT": CommandAttackUnit,
}

// Маппинг для логов Domain -> String
var commandTypeToString = map[CommandType]string{
	CommandEndTurn:    "END_TURN",
	CommandCreateUnit: "CREATE_UNIT",
	CommandMove:       "MOVE",
	CommandAttackUnit: "ATTACK_UNIT",
}

// ParseCommand конвертирует строку из JSON в CommandType
func ParseCommand(s string) CommandType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := commandStringToType[upper]; ok {
		return val
	}
	return CommandUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a CommandType) String() string {
	if val, ok := commandTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
