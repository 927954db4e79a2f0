package engine

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
)

// TurnManager - очередность ходов. Игроки ходят строго по кругу в порядке
// ростера, одновременно ходит только один.
type TurnManager struct {
	players []domain.Player
	current int
}

func NewTurnManager(players []domain.Player) *TurnManager {
	roster := make([]domain.Player, len(players))
	copy(roster, players)
	return &TurnManager{players: roster}
}

// Current - игрок, чей сейчас ход.
func (tm *TurnManager) Current() domain.PlayerID {
	return tm.players[tm.current].ID
}

// Next - игрок, который ходит после текущего.
func (tm *TurnManager) Next() domain.PlayerID {
	return tm.players[(tm.current+1)%len(tm.players)].ID
}

// SetCurrent передает ход игроку id (по событию EndTurn).
func (tm *TurnManager) SetCurrent(id domain.PlayerID) {
	for i, p := range tm.players {
		if p.ID == id {
			tm.current = i
			logger.Log.WithField("player", id).Debug("Turn passed")
			return
		}
	}
	logger.Log.WithField("player", id).Warn("Turn passed to a player outside the roster")
}

// IsAI - играет ли за игрока ИИ.
func (tm *TurnManager) IsAI(id domain.PlayerID) bool {
	for _, p := range tm.players {
		if p.ID == id {
			return p.IsAI
		}
	}
	return false
}

// Players возвращает ростер в порядке ходов.
func (tm *TurnManager) Players() []domain.Player {
	out := make([]domain.Player, len(tm.players))
	copy(out, tm.players)
	return out
}

func (tm *TurnManager) Len() int {
	return len(tm.players)
}
