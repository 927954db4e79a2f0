package engine

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/systems"
	"github.com/sirupsen/logrus"
)

// reactionFire - ответный огонь противников цели по клетке pos. Подходящие
// юниты стреляют по очереди в порядке возрастания ID, пока кто-то не
// попадет: остальные уже не стреляют. Возвращает nil, если огня не было.
func (g *Game) reactionFire(target domain.Unit, pos domain.Position, removeMovePoints bool) []domain.Event {
	victim := target
	victim.Pos = pos

	var shots []domain.Event
	for _, enemy := range g.state.Units() {
		if enemy.PlayerID == target.PlayerID {
			continue
		}
		if enemy.ReactiveAttackPoints == nil {
			violate(domain.EventAttackUnit, enemy.ID, "reactive attack points missing in authoritative state")
		}
		if *enemy.ReactiveAttackPoints <= 0 || enemy.Morale < systems.MinFireMorale {
			continue
		}

		obs, ok := g.observers[enemy.PlayerID]
		if !ok || !obs.CanSee(target.TypeID, pos) {
			continue
		}
		if systems.CheckFirePosition(g.state.Terrain(), g.registry, enemy, pos) != nil {
			continue
		}

		shot := g.attack(enemy, victim, domain.FireReactive, removeMovePoints)
		shots = append(shots, shot)

		g.log.WithFields(logrus.Fields{
			"shooter_id": enemy.ID,
			"target_id":  target.ID,
			"x":          pos.X,
			"y":          pos.Y,
			"killed":     shot.Killed,
		}).Debug("Reaction fire")

		if shot.Killed > 0 {
			break
		}
	}
	return shots
}

// reactionFireMove проверяет каждую точку пути, кроме стартовой. Первый же
// ответный огонь обрывает движение: юнит доходит до этой точки и попадает
// под огонь, даже если все промахнулись.
func (g *Game) reactionFireMove(mover domain.Unit, path domain.Path, mode domain.MoveMode) []domain.Event {
	removeMovePoints := mode == domain.MoveFast
	for i := 1; i < len(path); i++ {
		shots := g.reactionFire(mover, path[i].Pos, removeMovePoints)
		if len(shots) == 0 {
			continue
		}
		move := domain.MoveEvent{UnitID: mover.ID, Path: path.Prefix(i + 1), Mode: mode}
		return append([]domain.Event{move}, shots...)
	}
	return nil
}

// attack разрешает выстрел. Засада возможна, только если сторона цели не
// видит стрелка.
func (g *Game) attack(attacker, defender domain.Unit, mode domain.FireMode, removeMovePoints bool) domain.AttackUnitEvent {
	hidden := true
	if obs, ok := g.observers[defender.PlayerID]; ok {
		hidden = !obs.CanSee(attacker.TypeID, attacker.Pos)
	}
	return systems.ResolveAttack(g.rng, g.registry, systems.Engagement{
		Attacker:         attacker,
		Defender:         defender,
		Mode:             mode,
		RemoveMovePoints: removeMovePoints,
		AttackerHidden:   hidden,
	})
}
