package engine

import (
	"errors"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/state"
	"github.com/gitter-badger/zoc/internal/systems"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Причины отказа в команде. Отказ не меняет состояние и не порождает событий.
var (
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrNotOwner        = errors.New("unit does not belong to the active player")
	ErrFriendlyTarget  = errors.New("target belongs to the active player")
	ErrOutOfRange      = systems.ErrOutOfRange
	ErrNoLineOfSight   = systems.ErrNoLineOfSight
	ErrLowMorale       = systems.ErrLowMorale
	ErrNoAttackPoints  = errors.New("no attack points left")
	ErrNoMovePoints    = errors.New("not enough move points")
	ErrOccupied        = errors.New("tile is occupied")
	ErrBadPath         = errors.New("invalid path")
	ErrOutOfBounds     = errors.New("position is out of bounds")
	ErrReplayDiverged  = errors.New("replay diverged from the journal")
)

// violate - движок обнаружил, что его собственные данные противоречат
// инварианту. Продолжать партию нельзя.
func violate(event domain.EventType, id domain.UnitID, reason string) {
	err := &state.InvariantError{Event: event, UnitID: id, Reason: reason}
	logger.Log.WithFields(logrus.Fields{
		"component": "event_engine",
		"event":     event,
		"unit_id":   id,
	}).Error(err.Error())
	panic(err)
}
