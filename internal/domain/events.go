package domain

import "strings"

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventMove
	EventEndTurn
	EventCreateUnit
	EventAttackUnit
	EventShowUnit
	EventHideUnit
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"MOVE":        EventMove,
	"END_TURN":    EventEndTurn,
	"CREATE_UNIT": EventCreateUnit,
	"ATTACK_UNIT": EventAttackUnit,
	"SHOW_UNIT":   EventShowUnit,
	"HIDE_UNIT":   EventHideUnit,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventMove:       "MOVE",
	EventEndTurn:    "END_TURN",
	EventCreateUnit: "CREATE_UNIT",
	EventAttackUnit: "ATTACK_UNIT",
	EventShowUnit:   "SHOW_UNIT",
	EventHideUnit:   "HIDE_UNIT",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := eventStringToType[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - событие "истины". Набор вариантов закрыт: реализовать интерфейс
// можно только внутри пакета (метод sealedEvent не экспортируется).
//
// Обработка событий идет через EventHandler: добавление нового варианта
// добавляет метод в интерфейс, и все обработчики перестают компилироваться,
// пока не обработают новый случай.
type Event interface {
	Type() EventType
	Accept(h EventHandler)
	sealedEvent()
}

// EventHandler - исчерпывающий обработчик всех вариантов Event.
type EventHandler interface {
	OnMove(e MoveEvent)
	OnEndTurn(e EndTurnEvent)
	OnCreateUnit(e CreateUnitEvent)
	OnAttackUnit(e AttackUnitEvent)
	OnShowUnit(e ShowUnitEvent)
	OnHideUnit(e HideUnitEvent)
}

// MoveEvent - юнит прошел путь.
type MoveEvent struct {
	UnitID UnitID
	Path   Path
	Mode   MoveMode
}

// EndTurnEvent - ход переходит от OldID к NewID.
type EndTurnEvent struct {
	OldID PlayerID
	NewID PlayerID
}

// CreateUnitEvent - на карте появился новый юнит.
type CreateUnitEvent struct {
	UnitID   UnitID
	Pos      Position
	TypeID   UnitTypeID
	PlayerID PlayerID
}

// AttackUnitEvent - результат одной атаки.
type AttackUnitEvent struct {
	// AttackerID == nil означает засаду: жертва не знает, кто стрелял.
	AttackerID       *UnitID
	DefenderID       UnitID
	Mode             FireMode
	Killed           int
	Suppression      int
	RemoveMovePoints bool
}

// Attacker возвращает атакующего, если он известен.
func (e AttackUnitEvent) Attacker() (UnitID, bool) {
	if e.AttackerID == nil {
		return 0, false
	}
	return *e.AttackerID, true
}

// ShowUnitEvent - наблюдатель заметил чужой юнит.
type ShowUnitEvent struct {
	UnitID   UnitID
	Pos      Position
	TypeID   UnitTypeID
	PlayerID PlayerID
}

// HideUnitEvent - наблюдатель потерял юнит из виду.
type HideUnitEvent struct {
	UnitID UnitID
}

func (MoveEvent) Type() EventType       { return EventMove }
func (EndTurnEvent) Type() EventType    { return EventEndTurn }
func (CreateUnitEvent) Type() EventType { return EventCreateUnit }
func (AttackUnitEvent) Type() EventType { return EventAttackUnit }
func (ShowUnitEvent) Type() EventType   { return EventShowUnit }
func (HideUnitEvent) Type() EventType   { return EventHideUnit }

func (e MoveEvent) Accept(h EventHandler)       { h.OnMove(e) }
func (e EndTurnEvent) Accept(h EventHandler)    { h.OnEndTurn(e) }
func (e CreateUnitEvent) Accept(h EventHandler) { h.OnCreateUnit(e) }
func (e AttackUnitEvent) Accept(h EventHandler) { h.OnAttackUnit(e) }
func (e ShowUnitEvent) Accept(h EventHandler)   { h.OnShowUnit(e) }
func (e HideUnitEvent) Accept(h EventHandler)   { h.OnHideUnit(e) }

func (MoveEvent) sealedEvent()       {}
func (EndTurnEvent) sealedEvent()    {}
func (CreateUnitEvent) sealedEvent() {}
func (AttackUnitEvent) sealedEvent() {}
func (ShowUnitEvent) sealedEvent()   {}
func (HideUnitEvent) sealedEvent()   {}
