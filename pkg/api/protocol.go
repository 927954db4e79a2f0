package api

import (
	"encoding/json"
)

// --- КЛИЕНТ -> ДВИЖОК ---

// CommandEnvelope это корневой объект для всех команд игрока (человека или ИИ).
// Движок работает в одном процессе, но граница команд устроена так,
// как будто ее можно пересечь по сети.
type CommandEnvelope struct {
	// Type название команды: END_TURN, CREATE_UNIT, MOVE, ATTACK_UNIT.
	Type string `json:"type"`

	// Payload JSON-объект с данными команды. Его структура зависит от Type.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- ДВИЖОК -> КЛИЕНТ ---

// EventEnvelope это одно событие из отфильтрованного потока конкретного игрока.
// Клиент (рендер или ИИ) применяет их строго по порядку.
type EventEnvelope struct {
	// Type название события: MOVE, END_TURN, CREATE_UNIT, ATTACK_UNIT, SHOW_UNIT, HIDE_UNIT.
	Type string `json:"type"`

	Payload json.RawMessage `json:"payload"`
}

// LogEntry представляет одну запись в журнале партии.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, TURN, WARN
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- Payloads ---

// PositionPayload клетка карты в offset-координатах.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PathNodePayload узел пути с накопленной стоимостью.
type PathNodePayload struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Cost int `json:"cost"`
}

// MovePayload используется командой и событием MOVE.
type MovePayload struct {
	UnitID int32             `json:"unitId"`
	Path   []PathNodePayload `json:"path"`
	Mode   string            `json:"mode"` // FAST, HUNT
}

// AttackPayload используется командой ATTACK_UNIT.
type AttackPayload struct {
	AttackerID int32 `json:"attackerId"`
	DefenderID int32 `json:"defenderId"`
}

// EndTurnPayload событие END_TURN.
type EndTurnPayload struct {
	OldID int32 `json:"oldId"`
	NewID int32 `json:"newId"`
}

// UnitPayload события CREATE_UNIT и SHOW_UNIT.
type UnitPayload struct {
	UnitID   int32           `json:"unitId"`
	Pos      PositionPayload `json:"pos"`
	TypeID   string          `json:"typeId"`
	PlayerID int32           `json:"playerId"`
}

// AttackResultPayload событие ATTACK_UNIT. AttackerID отсутствует при засаде.
type AttackResultPayload struct {
	AttackerID       *int32 `json:"attackerId,omitempty"`
	DefenderID       int32  `json:"defenderId"`
	Mode             string `json:"mode"` // ACTIVE, REACTIVE
	Killed           int    `json:"killed"`
	Suppression      int    `json:"suppression"`
	RemoveMovePoints bool   `json:"removeMovePoints"`
}

// HideUnitPayload событие HIDE_UNIT.
type HideUnitPayload struct {
	UnitID int32 `json:"unitId"`
}
