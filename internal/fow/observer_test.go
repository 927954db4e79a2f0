package fow

import (
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enemySoldier(id domain.UnitID, at domain.Position) domain.CreateUnitEvent {
	return domain.CreateUnitEvent{UnitID: id, Pos: at, TypeID: "soldier", PlayerID: 1}
}

func TestObserver_CreateUnit(t *testing.T) {
	o := newWatcher(t)

	hidden := enemySoldier(1, pos(9, 4))
	assert.Empty(t, o.Observe(hidden), "enemy created out of sight")

	visible := enemySoldier(2, pos(5, 4))
	assert.Equal(t, []domain.Event{visible}, o.Observe(visible))
	assert.Equal(t, []domain.UnitID{2}, o.VisibleEnemies())

	own := domain.CreateUnitEvent{UnitID: 3, Pos: pos(0, 0), TypeID: "tank", PlayerID: 0}
	assert.Equal(t, []domain.Event{own}, o.Observe(own))
}

func TestObserver_EnemyMoveOutOfSight(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(9, 4)))

	out := o.Observe(domain.MoveEvent{UnitID: 1, Path: row(4, 9, 7), Mode: domain.MoveFast})

	assert.Empty(t, out)
	assert.Empty(t, o.VisibleEnemies())
}

func TestObserver_EnemyMoveInSight(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(5, 4)))

	fast := domain.MoveEvent{UnitID: 1, Path: row(4, 5, 3), Mode: domain.MoveFast}
	out := o.Observe(fast)
	require.Len(t, out, 1)
	assert.Equal(t, fast, out[0])

	// Ход игрока 1 восполняет очки: шаг охотой стоит 2 из 3.
	o.Observe(domain.EndTurnEvent{OldID: 0, NewID: 1})
	hunt := domain.MoveEvent{UnitID: 1, Path: row(4, 3, 2), Mode: domain.MoveHunt}
	out = o.Observe(hunt)
	require.Len(t, out, 1)
	assert.Equal(t, hunt, out[0])
}

func TestObserver_EnemyLeavesSight(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(6, 4)))

	out := o.Observe(domain.MoveEvent{UnitID: 1, Path: row(4, 6, 8), Mode: domain.MoveFast})

	require.Len(t, out, 2)
	assert.Equal(t, domain.MoveEvent{
		UnitID: 1,
		Path:   domain.Path{{Pos: pos(6, 4), Cost: 0}, {Pos: pos(7, 4), Cost: 1}},
		Mode:   domain.MoveFast,
	}, out[0])
	assert.Equal(t, domain.HideUnitEvent{UnitID: 1}, out[1])
	assert.Empty(t, o.VisibleEnemies())
}

func TestObserver_EnemyEntersSight(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(8, 4)))

	out := o.Observe(domain.MoveEvent{UnitID: 1, Path: row(4, 8, 5), Mode: domain.MoveFast})

	require.Len(t, out, 2)
	assert.Equal(t, domain.ShowUnitEvent{UnitID: 1, Pos: pos(7, 4), TypeID: "soldier", PlayerID: 1}, out[0])

	move, ok := out[1].(domain.MoveEvent)
	require.True(t, ok)
	assert.Equal(t, domain.Path{
		{Pos: pos(7, 4), Cost: 0},
		{Pos: pos(6, 4), Cost: 1},
		{Pos: pos(5, 4), Cost: 2},
	}, move.Path)
	assert.Equal(t, []domain.UnitID{1}, o.VisibleEnemies())
}

func TestObserver_OwnMoveRevealsEnemy(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(9, 4)))

	move := domain.MoveEvent{UnitID: 0, Path: row(4, 0, 3), Mode: domain.MoveFast}
	out := o.Observe(move)

	require.Len(t, out, 2)
	assert.Equal(t, move, out[0])
	assert.Equal(t, domain.ShowUnitEvent{UnitID: 1, Pos: pos(9, 4), TypeID: "soldier", PlayerID: 1}, out[1])
}

func TestObserver_EndTurnRebuildsSight(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(6, 4)))
	require.Equal(t, []domain.UnitID{1}, o.VisibleEnemies())

	retreat := domain.MoveEvent{
		UnitID: 0,
		Path:   domain.Path{{Pos: pos(0, 4), Cost: 0}, {Pos: pos(0, 3), Cost: 1}, {Pos: pos(0, 2), Cost: 2}},
		Mode:   domain.MoveFast,
	}
	out := o.Observe(retreat)
	assert.Equal(t, []domain.Event{retreat}, out, "sight accumulates during the own turn")

	out = o.Observe(domain.EndTurnEvent{OldID: 0, NewID: 1})
	assert.Equal(t, []domain.Event{domain.EndTurnEvent{OldID: 0, NewID: 1}}, out)
	assert.Equal(t, []domain.UnitID{1}, o.VisibleEnemies())

	out = o.Observe(domain.EndTurnEvent{OldID: 1, NewID: 0})
	assert.Equal(t, []domain.Event{
		domain.EndTurnEvent{OldID: 1, NewID: 0},
		domain.HideUnitEvent{UnitID: 1},
	}, out)
	assert.Empty(t, o.VisibleEnemies())
}

func TestObserver_AttackRevealsAttacker(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(8, 4)))

	attack := domain.AttackUnitEvent{
		AttackerID:  domain.UnitRef(1),
		DefenderID:  0,
		Mode:        domain.FireActive,
		Killed:      1,
		Suppression: 30,
	}
	out := o.Observe(attack)

	require.Len(t, out, 2)
	assert.Equal(t, domain.ShowUnitEvent{UnitID: 1, Pos: pos(8, 4), TypeID: "soldier", PlayerID: 1}, out[0])
	assert.Equal(t, attack, out[1])
	assert.Equal(t, []domain.UnitID{1}, o.VisibleEnemies())
}

func TestObserver_AmbushKeepsAttackerHidden(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(8, 4)))

	ambush := domain.AttackUnitEvent{DefenderID: 0, Mode: domain.FireReactive, Killed: 1, Suppression: 30}
	out := o.Observe(ambush)

	assert.Equal(t, []domain.Event{ambush}, out)
	assert.Empty(t, o.VisibleEnemies())
}

func TestObserver_KilledEnemyForgotten(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(5, 4)))

	kill := domain.AttackUnitEvent{AttackerID: domain.UnitRef(0), DefenderID: 1, Mode: domain.FireActive, Killed: 4, Suppression: 90}
	out := o.Observe(kill)

	assert.Equal(t, []domain.Event{kill}, out)
	assert.Empty(t, o.VisibleEnemies())
}

func TestObserver_DrainQueue(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(5, 4)))
	o.Observe(domain.EndTurnEvent{OldID: 0, NewID: 1})

	assert.Equal(t, 2, o.Pending())
	assert.Len(t, o.Drain(), 2)
	assert.Zero(t, o.Pending())
	assert.Empty(t, o.Drain())
}

// Зеркало, построенное только из отфильтрованных событий, должно держать
// призраки ровно для тех юнитов, о которых сообщено.
func TestObserver_MirrorStaysConsistent(t *testing.T) {
	terrain := domain.NewTerrainMap(10, 8)
	reg := registry.Default()
	o := NewObserver(0, terrain, reg)
	mirror := state.NewMirror(terrain, reg, 0)

	truth := []domain.Event{
		domain.CreateUnitEvent{UnitID: 0, Pos: pos(0, 4), TypeID: "soldier", PlayerID: 0},
		enemySoldier(1, pos(8, 4)),
		enemySoldier(2, pos(5, 2)),
		domain.EndTurnEvent{OldID: 0, NewID: 1},
		domain.MoveEvent{UnitID: 1, Path: row(4, 8, 5), Mode: domain.MoveFast},
		domain.MoveEvent{UnitID: 2, Path: row(2, 5, 8), Mode: domain.MoveFast},
		domain.AttackUnitEvent{AttackerID: domain.UnitRef(1), DefenderID: 0, Mode: domain.FireActive, Killed: 1, Suppression: 30},
		domain.EndTurnEvent{OldID: 1, NewID: 0},
		domain.AttackUnitEvent{AttackerID: domain.UnitRef(0), DefenderID: 1, Mode: domain.FireActive, Killed: 4, Suppression: 90},
	}

	for _, e := range truth {
		for _, filtered := range o.Observe(e) {
			mirror.Apply(filtered)
		}

		var ghosts []domain.UnitID
		for _, u := range mirror.Units() {
			if u.PlayerID != 0 {
				ghosts = append(ghosts, u.ID)
			}
		}
		if len(ghosts) == 0 {
			assert.Empty(t, o.VisibleEnemies(), "after %s", e.Type())
		} else {
			assert.Equal(t, ghosts, o.VisibleEnemies(), "after %s", e.Type())
		}
	}

	own, ok := mirror.Unit(0)
	require.True(t, ok)
	assert.Equal(t, 3, own.Count)
	assert.False(t, mirror.HasUnit(1))
}

func TestObserver_StaleGhostRetractedOnKill(t *testing.T) {
	o := newWatcher(t)
	o.Observe(enemySoldier(1, pos(5, 4)))
	o.Observe(domain.AttackUnitEvent{AttackerID: domain.UnitRef(0), DefenderID: 1, Mode: domain.FireActive, Killed: 1, Suppression: 30})

	o.Observe(domain.MoveEvent{UnitID: 1, Path: row(4, 5, 7), Mode: domain.MoveFast})
	require.Empty(t, o.VisibleEnemies())

	// Призрак появляется заново с полным составом: о потере бойца игрок не знает.
	out := o.Observe(domain.MoveEvent{UnitID: 1, Path: row(4, 7, 6), Mode: domain.MoveFast})
	require.Len(t, out, 2)
	require.Equal(t, []domain.UnitID{1}, o.VisibleEnemies())

	kill := domain.AttackUnitEvent{AttackerID: domain.UnitRef(0), DefenderID: 1, Mode: domain.FireActive, Killed: 3, Suppression: 70}
	out = o.Observe(kill)

	assert.Equal(t, []domain.Event{kill, domain.HideUnitEvent{UnitID: 1}}, out)
	assert.Empty(t, o.VisibleEnemies())
}
