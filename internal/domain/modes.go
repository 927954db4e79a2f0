package domain

import "strings"

// MoveMode - режим движения.
type MoveMode uint8

const (
	// MoveFast - обычная стоимость пути, попадание под огонь обнуляет очки движения.
	MoveFast MoveMode = iota
	// MoveHunt - осторожное движение за двойную стоимость.
	MoveHunt
)

var moveModeStringToType = map[string]MoveMode{
	"FAST": MoveFast,
	"HUNT": MoveHunt,
}

var moveModeTypeToString = map[MoveMode]string{
	MoveFast: "FAST",
	MoveHunt: "HUNT",
}

func ParseMoveMode(s string) (MoveMode, bool) {
	val, ok := moveModeStringToType[strings.ToUpper(s)]
	return val, ok
}

func (m MoveMode) String() string {
	if val, ok := moveModeTypeToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}

// CostMultiplier - во сколько раз режим увеличивает стоимость пути.
func (m MoveMode) CostMultiplier() int {
	if m == MoveHunt {
		return 2
	}
	return 1
}

// FireMode - режим огня.
type FireMode uint8

const (
	// FireActive - выстрел в свой ход, тратит обычные очки атаки.
	FireActive FireMode = iota
	// FireReactive - ответный огонь в чужой ход, тратит реактивные очки.
	FireReactive
)

var fireModeStringToType = map[string]FireMode{
	"ACTIVE":   FireActive,
	"REACTIVE": FireReactive,
}

var fireModeTypeToString = map[FireMode]string{
	FireActive:   "ACTIVE",
	FireReactive: "REACTIVE",
}

func ParseFireMode(s string) (FireMode, bool) {
	val, ok := fireModeStringToType[strings.ToUpper(s)]
	return val, ok
}

func (m FireMode) String() string {
	if val, ok := fireModeTypeToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}
