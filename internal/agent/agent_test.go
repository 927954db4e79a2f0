package agent

import (
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) domain.Position {
	return domain.Position{X: x, Y: y}
}

// newAgent - ИИ за игрока 1 на открытой карте 10x8.
func newAgent(t *testing.T, events ...domain.Event) *Agent {
	t.Helper()
	a, err := New(1, domain.NewTerrainMap(10, 8), registry.Default())
	require.NoError(t, err)
	a.Observe(events)
	return a
}

func own(id domain.UnitID, at domain.Position) domain.Event {
	return domain.CreateUnitEvent{UnitID: id, Pos: at, TypeID: "soldier", PlayerID: 1}
}

func enemy(id domain.UnitID, at domain.Position) domain.Event {
	return domain.ShowUnitEvent{UnitID: id, Pos: at, TypeID: "soldier", PlayerID: 0}
}

func TestDecide_AttackInRange(t *testing.T) {
	a := newAgent(t, own(0, pos(5, 4)), enemy(1, pos(3, 4)))

	assert.Equal(t, domain.AttackUnitCommand{AttackerID: 0, DefenderID: 1}, a.Decide())
}

func TestDecide_AdvanceTowardsEnemy(t *testing.T) {
	a := newAgent(t, own(0, pos(9, 4)), enemy(1, pos(3, 4)))

	cmd := a.Decide()

	require.IsType(t, domain.MoveCommand{}, cmd)
	move := cmd.(domain.MoveCommand)
	assert.Equal(t, domain.UnitID(0), move.UnitID)
	assert.Equal(t, domain.MoveFast, move.Mode)
	assert.Equal(t, domain.Path{
		{Pos: pos(9, 4), Cost: 0},
		{Pos: pos(8, 4), Cost: 1},
		{Pos: pos(7, 4), Cost: 2},
		{Pos: pos(6, 4), Cost: 3},
	}, move.Path, "path is truncated to the unit's move points")
}

func TestDecide_EndTurnWithoutEnemies(t *testing.T) {
	a := newAgent(t, own(0, pos(9, 4)))

	assert.Equal(t, domain.EndTurnCommand{}, a.Decide())
}

func TestDecide_NoAttackPointsInRange(t *testing.T) {
	a := newAgent(t,
		own(0, pos(5, 4)),
		enemy(1, pos(3, 4)),
		// Конец своего хода переводит очки атаки в реактивные.
		domain.EndTurnEvent{OldID: 1, NewID: 0},
	)

	assert.Equal(t, domain.EndTurnCommand{}, a.Decide(), "already in range, nothing to advance")
}

func TestDecide_SuppressedUnitHoldsFire(t *testing.T) {
	a := newAgent(t,
		own(0, pos(5, 4)),
		enemy(1, pos(3, 4)),
		// Огонь из засады: стрелок неизвестен, мораль падает до 40.
		domain.AttackUnitEvent{DefenderID: 0, Mode: domain.FireReactive, Suppression: 60},
	)

	assert.Equal(t, domain.EndTurnCommand{}, a.Decide(), "morale below the fire threshold")
}

func TestDecide_NoMovePoints(t *testing.T) {
	a := newAgent(t,
		own(0, pos(9, 4)),
		enemy(1, pos(3, 4)),
		domain.MoveEvent{
			UnitID: 0,
			Path:   domain.Path{{Pos: pos(9, 4)}, {Pos: pos(8, 4), Cost: 1}, {Pos: pos(7, 4), Cost: 2}, {Pos: pos(6, 4), Cost: 3}},
			Mode:   domain.MoveFast,
		},
	)

	// (6,4) -> (3,4): дистанция 3, уже в радиусе винтовки.
	assert.Equal(t, domain.AttackUnitCommand{AttackerID: 0, DefenderID: 1}, a.Decide())
}

func TestDecide_HiddenEnemyIsUnknown(t *testing.T) {
	a := newAgent(t,
		own(0, pos(5, 4)),
		enemy(1, pos(3, 4)),
		domain.HideUnitEvent{UnitID: 1},
	)

	assert.Equal(t, domain.EndTurnCommand{}, a.Decide())
}

func TestNewWithRules_CompileError(t *testing.T) {
	_, err := NewWithRules(1, domain.NewTerrainMap(4, 4), registry.Default(), []*Rule{
		{Name: "broken", ConditionSrc: `Cash() > 0`, Action: func(RuleEnv) domain.Command { return nil }},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `compile rule "broken"`)
}

func TestNewWithRules_PriorityOrder(t *testing.T) {
	rules := []*Rule{
		{Name: "low", Priority: 1, ConditionSrc: `true`, Action: func(RuleEnv) domain.Command { return domain.EndTurnCommand{} }},
		{Name: "high", Priority: 10, ConditionSrc: `OwnUnits > 0`, Action: func(RuleEnv) domain.Command {
			return domain.CreateUnitCommand{Pos: pos(1, 1)}
		}},
	}
	a, err := NewWithRules(1, domain.NewTerrainMap(4, 4), registry.Default(), rules)
	require.NoError(t, err)

	assert.Equal(t, domain.EndTurnCommand{}, a.Decide(), "high rule does not match without units")

	a.Observe([]domain.Event{own(0, pos(0, 0))})
	assert.Equal(t, domain.CreateUnitCommand{Pos: pos(1, 1)}, a.Decide())
}
