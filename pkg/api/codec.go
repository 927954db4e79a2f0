package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gitter-badger/zoc/internal/domain"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrUnknownEvent   = errors.New("unknown event type")
)

// decodeFunc превращает сырой payload в доменную команду.
type decodeFunc func(raw json.RawMessage) (domain.Command, error)

// withPayload берет типизированный конструктор команды и превращает его
// в decodeFunc. Она берет на себя Unmarshal и Validate.
func withPayload[T any](build func(payload T) (domain.Command, error)) decodeFunc {
	return func(raw json.RawMessage) (domain.Command, error) {
		var payload T

		// 1. Распаковка JSON
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("invalid payload format: %w", err)
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Сборка команды
		return build(payload)
	}
}

// withEmptyPayload - для команд без данных (END_TURN)
func withEmptyPayload(cmd domain.Command) decodeFunc {
	return func(json.RawMessage) (domain.Command, error) {
		return cmd, nil
	}
}

var decoders = map[domain.CommandType]decodeFunc{
	domain.CommandEndTurn:    withEmptyPayload(domain.EndTurnCommand{}),
	domain.CommandCreateUnit: withPayload(buildCreateUnit),
	domain.CommandMove:       withPayload(buildMove),
	domain.CommandAttackUnit: withPayload(buildAttackUnit),
}

func buildCreateUnit(p PositionPayload) (domain.Command, error) {
	return domain.CreateUnitCommand{Pos: domain.Position{X: p.X, Y: p.Y}}, nil
}

func buildMove(p MovePayload) (domain.Command, error) {
	mode, ok := domain.ParseMoveMode(p.Mode)
	if !ok {
		return nil, fmt.Errorf("invalid move mode %q", p.Mode)
	}
	return domain.MoveCommand{
		UnitID: domain.UnitID(p.UnitID),
		Path:   pathFromPayload(p.Path),
		Mode:   mode,
	}, nil
}

func buildAttackUnit(p AttackPayload) (domain.Command, error) {
	return domain.AttackUnitCommand{
		AttackerID: domain.UnitID(p.AttackerID),
		DefenderID: domain.UnitID(p.DefenderID),
	}, nil
}

// DecodeCommand разбирает конверт команды.
func DecodeCommand(env CommandEnvelope) (domain.Command, error) {
	decode, ok := decoders[domain.ParseCommand(env.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
	}
	return decode(env.Payload)
}

// EncodeCommand упаковывает команду в конверт.
func EncodeCommand(cmd domain.Command) (CommandEnvelope, error) {
	var payload any
	switch c := cmd.(type) {
	case domain.EndTurnCommand:
		return CommandEnvelope{Type: c.Type().String()}, nil
	case domain.CreateUnitCommand:
		payload = positionToPayload(c.Pos)
	case domain.MoveCommand:
		payload = MovePayload{UnitID: int32(c.UnitID), Path: pathToPayload(c.Path), Mode: c.Mode.String()}
	case domain.AttackUnitCommand:
		payload = AttackPayload{AttackerID: int32(c.AttackerID), DefenderID: int32(c.DefenderID)}
	default:
		return CommandEnvelope{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return CommandEnvelope{}, fmt.Errorf("marshal %s payload: %w", cmd.Type(), err)
	}
	return CommandEnvelope{Type: cmd.Type().String(), Payload: raw}, nil
}

// EncodeEvent упаковывает событие в конверт.
func EncodeEvent(e domain.Event) (EventEnvelope, error) {
	enc := &eventEncoder{}
	e.Accept(enc)

	raw, err := json.Marshal(enc.payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal %s payload: %w", e.Type(), err)
	}
	return EventEnvelope{Type: e.Type().String(), Payload: raw}, nil
}

type eventEncoder struct {
	payload any
}

func (enc *eventEncoder) OnMove(e domain.MoveEvent) {
	enc.payload = MovePayload{UnitID: int32(e.UnitID), Path: pathToPayload(e.Path), Mode: e.Mode.String()}
}

func (enc *eventEncoder) OnEndTurn(e domain.EndTurnEvent) {
	enc.payload = EndTurnPayload{OldID: int32(e.OldID), NewID: int32(e.NewID)}
}

func (enc *eventEncoder) OnCreateUnit(e domain.CreateUnitEvent) {
	enc.payload = unitToPayload(e.UnitID, e.Pos, e.TypeID, e.PlayerID)
}

func (enc *eventEncoder) OnAttackUnit(e domain.AttackUnitEvent) {
	p := AttackResultPayload{
		DefenderID:       int32(e.DefenderID),
		Mode:             e.Mode.String(),
		Killed:           e.Killed,
		Suppression:      e.Suppression,
		RemoveMovePoints: e.RemoveMovePoints,
	}
	if id, ok := e.Attacker(); ok {
		attacker := int32(id)
		p.AttackerID = &attacker
	}
	enc.payload = p
}

func (enc *eventEncoder) OnShowUnit(e domain.ShowUnitEvent) {
	enc.payload = unitToPayload(e.UnitID, e.Pos, e.TypeID, e.PlayerID)
}

func (enc *eventEncoder) OnHideUnit(e domain.HideUnitEvent) {
	enc.payload = HideUnitPayload{UnitID: int32(e.UnitID)}
}

// DecodeEvent разбирает конверт события (сторона клиента).
func DecodeEvent(env EventEnvelope) (domain.Event, error) {
	switch domain.ParseEvent(env.Type) {
	case domain.EventMove:
		var p MovePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid MOVE payload: %w", err)
		}
		mode, ok := domain.ParseMoveMode(p.Mode)
		if !ok {
			return nil, fmt.Errorf("invalid move mode %q", p.Mode)
		}
		return domain.MoveEvent{UnitID: domain.UnitID(p.UnitID), Path: pathFromPayload(p.Path), Mode: mode}, nil

	case domain.EventEndTurn:
		var p EndTurnPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid END_TURN payload: %w", err)
		}
		return domain.EndTurnEvent{OldID: domain.PlayerID(p.OldID), NewID: domain.PlayerID(p.NewID)}, nil

	case domain.EventCreateUnit, domain.EventShowUnit:
		var p UnitPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", env.Type, err)
		}
		pos := domain.Position{X: p.Pos.X, Y: p.Pos.Y}
		if domain.ParseEvent(env.Type) == domain.EventShowUnit {
			return domain.ShowUnitEvent{UnitID: domain.UnitID(p.UnitID), Pos: pos, TypeID: domain.UnitTypeID(p.TypeID), PlayerID: domain.PlayerID(p.PlayerID)}, nil
		}
		return domain.CreateUnitEvent{UnitID: domain.UnitID(p.UnitID), Pos: pos, TypeID: domain.UnitTypeID(p.TypeID), PlayerID: domain.PlayerID(p.PlayerID)}, nil

	case domain.EventAttackUnit:
		var p AttackResultPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid ATTACK_UNIT payload: %w", err)
		}
		mode, ok := domain.ParseFireMode(p.Mode)
		if !ok {
			return nil, fmt.Errorf("invalid fire mode %q", p.Mode)
		}
		e := domain.AttackUnitEvent{
			DefenderID:       domain.UnitID(p.DefenderID),
			Mode:             mode,
			Killed:           p.Killed,
			Suppression:      p.Suppression,
			RemoveMovePoints: p.RemoveMovePoints,
		}
		if p.AttackerID != nil {
			e.AttackerID = domain.UnitRef(domain.UnitID(*p.AttackerID))
		}
		return e, nil

	case domain.EventHideUnit:
		var p HideUnitPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("invalid HIDE_UNIT payload: %w", err)
		}
		return domain.HideUnitEvent{UnitID: domain.UnitID(p.UnitID)}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func positionToPayload(p domain.Position) PositionPayload {
	return PositionPayload{X: p.X, Y: p.Y}
}

func unitToPayload(id domain.UnitID, pos domain.Position, typeID domain.UnitTypeID, owner domain.PlayerID) UnitPayload {
	return UnitPayload{
		UnitID:   int32(id),
		Pos:      positionToPayload(pos),
		TypeID:   string(typeID),
		PlayerID: int32(owner),
	}
}

func pathToPayload(path domain.Path) []PathNodePayload {
	out := make([]PathNodePayload, len(path))
	for i, node := range path {
		out[i] = PathNodePayload{X: node.Pos.X, Y: node.Pos.Y, Cost: node.Cost}
	}
	return out
}

func pathFromPayload(nodes []PathNodePayload) domain.Path {
	path := make(domain.Path, len(nodes))
	for i, n := range nodes {
		path[i] = domain.PathNode{Pos: domain.Position{X: n.X, Y: n.Y}, Cost: n.Cost}
	}
	return path
}
