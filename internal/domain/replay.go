package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ReplayAction - это запись одной команды, поданной в движок
type ReplayAction struct {
	Turn    int             `json:"turn"`
	Player  PlayerID        `json:"player"`  // Кто сделал
	Command CommandType     `json:"command"` // Что сделал
	AI      bool            `json:"ai"`      // Команду выдал ИИ, а не человек
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись партии: сценарий, зерно и все команды по порядку.
// Повторная подача команд с тем же зерном дает ту же самую партию.
type ReplaySession struct {
	MatchID   uuid.UUID      `json:"matchId"`
	Seed      int64          `json:"seed"` // Зерно генератора случайных чисел
	Timestamp int64          `json:"timestamp"`
	Scenario  []byte         `json:"scenario"` // YAML сценария
	Actions   []ReplayAction `json:"actions"`
}
