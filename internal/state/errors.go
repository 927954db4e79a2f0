package state

import (
	"fmt"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// InvariantError - событие нарушило инвариант состояния. Это дефект движка
// (он выпустил недопустимое событие), а не ошибка игрока: после такой паники
// состоянию доверять нельзя.
type InvariantError struct {
	Event  domain.EventType
	UnitID domain.UnitID
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated by %s event on %s: %s", e.Event, e.UnitID, e.Reason)
}

func violate(event domain.EventType, id domain.UnitID, reason string) {
	err := &InvariantError{Event: event, UnitID: id, Reason: reason}
	logger.Log.WithFields(logrus.Fields{
		"component": "state",
		"event":     event,
		"unit_id":   id,
	}).Error(err.Error())
	panic(err)
}
