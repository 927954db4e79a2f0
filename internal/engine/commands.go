package engine

import (
	"fmt"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/systems"
)

// validator проверяет законность команды относительно "истины" и ничего не меняет.
type validator struct {
	g *Game
}

func (v validator) HandleEndTurn(domain.EndTurnCommand) ([]domain.Event, error) {
	return nil, nil
}

func (v validator) HandleCreateUnit(c domain.CreateUnitCommand) ([]domain.Event, error) {
	if !v.g.state.Terrain().InBounds(c.Pos) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Pos.X, c.Pos.Y)
	}
	if v.g.state.IsOccupied(c.Pos) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOccupied, c.Pos.X, c.Pos.Y)
	}
	return nil, nil
}

func (v validator) HandleMove(c domain.MoveCommand) ([]domain.Event, error) {
	u, err := v.ownUnit(c.UnitID)
	if err != nil {
		return nil, err
	}

	path := c.Path
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: path needs at least two nodes", ErrBadPath)
	}
	if path[0].Pos != u.Pos {
		return nil, fmt.Errorf("%w: path does not start at unit %s", ErrBadPath, u.ID)
	}

	m := v.g.state.Terrain()
	for i := 1; i < len(path); i++ {
		pos := path[i].Pos
		if !m.InBounds(pos) {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
		}
		if v.g.state.IsOccupied(pos) {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrOccupied, pos.X, pos.Y)
		}
	}
	if !systems.PathCostMatches(m, path) {
		return nil, fmt.Errorf("%w: costs do not match the terrain", ErrBadPath)
	}

	need := path.TotalCost() * c.Mode.CostMultiplier()
	if u.MovePoints <= 0 || need > u.MovePoints {
		return nil, fmt.Errorf("%w: unit %s has %d, needs %d", ErrNoMovePoints, u.ID, u.MovePoints, need)
	}
	return nil, nil
}

func (v validator) HandleAttackUnit(c domain.AttackUnitCommand) ([]domain.Event, error) {
	attacker, err := v.ownUnit(c.AttackerID)
	if err != nil {
		return nil, err
	}
	defender, ok := v.g.state.Unit(c.DefenderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, c.DefenderID)
	}
	if defender.PlayerID == attacker.PlayerID {
		return nil, fmt.Errorf("%w: %s", ErrFriendlyTarget, defender.ID)
	}
	if attacker.AttackPoints <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAttackPoints, attacker.ID)
	}
	if err := systems.CheckFirePosition(v.g.state.Terrain(), v.g.registry, attacker, defender.Pos); err != nil {
		return nil, fmt.Errorf("unit %s: %w", attacker.ID, err)
	}
	return nil, nil
}

func (v validator) ownUnit(id domain.UnitID) (domain.Unit, error) {
	u, ok := v.g.state.Unit(id)
	if !ok {
		return domain.Unit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, id)
	}
	if u.PlayerID != v.g.turns.Current() {
		return domain.Unit{}, fmt.Errorf("%w: %s", ErrNotOwner, id)
	}
	return u, nil
}

// interpreter превращает законную команду в события. Все вычисления идут
// по состоянию до команды: события применяются только после.
type interpreter struct {
	g *Game
}

func (in interpreter) HandleEndTurn(domain.EndTurnCommand) ([]domain.Event, error) {
	return []domain.Event{domain.EndTurnEvent{
		OldID: in.g.turns.Current(),
		NewID: in.g.turns.Next(),
	}}, nil
}

func (in interpreter) HandleCreateUnit(c domain.CreateUnitCommand) ([]domain.Event, error) {
	if _, err := (validator{in.g}).HandleCreateUnit(c); err != nil {
		return nil, err
	}
	return []domain.Event{domain.CreateUnitEvent{
		UnitID:   in.g.allocUnitID(),
		Pos:      c.Pos,
		TypeID:   in.g.registry.DefaultUnitType(),
		PlayerID: in.g.turns.Current(),
	}}, nil
}

func (in interpreter) HandleMove(c domain.MoveCommand) ([]domain.Event, error) {
	if _, err := (validator{in.g}).HandleMove(c); err != nil {
		return nil, err
	}
	mover, _ := in.g.state.Unit(c.UnitID)

	if events := in.g.reactionFireMove(mover, c.Path, c.Mode); len(events) > 0 {
		return events, nil
	}
	return []domain.Event{domain.MoveEvent{UnitID: c.UnitID, Path: c.Path, Mode: c.Mode}}, nil
}

func (in interpreter) HandleAttackUnit(c domain.AttackUnitCommand) ([]domain.Event, error) {
	if _, err := (validator{in.g}).HandleAttackUnit(c); err != nil {
		return nil, err
	}
	attacker, _ := in.g.state.Unit(c.AttackerID)
	defender, _ := in.g.state.Unit(c.DefenderID)

	shot := in.g.attack(attacker, defender, domain.FireActive, false)
	events := []domain.Event{shot}

	// Выживший отвечает по стрелку. Цели ответного огня берутся из
	// состояния до выстрела.
	if defender.Count-shot.Killed > 0 {
		events = append(events, in.g.reactionFire(attacker, attacker.Pos, false)...)
	}
	return events, nil
}
