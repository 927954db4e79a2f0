package agent

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/systems"
)

// RuleEnv - то, что видят условия правил. Собирается заново перед каждым
// решением и только из зеркала агента.
type RuleEnv struct {
	Player     int
	OwnUnits   int
	EnemyUnits int

	plan *planner
}

// CanAttack - есть ли свой юнит с очками атаки и цель у него на прицеле.
func (e RuleEnv) CanAttack() bool {
	return e.plan != nil && e.plan.attack() != nil
}

// CanAdvance - может ли какой-нибудь свой юнит сблизиться с противником.
func (e RuleEnv) CanAdvance() bool {
	return e.plan != nil && e.plan.advance() != nil
}

// planner считает кандидатов на команду лениво и не более одного раза
// за решение.
type planner struct {
	a       *Agent
	own     []domain.Unit
	enemies []domain.Unit

	attackCmd   domain.Command
	attackDone  bool
	advanceCmd  domain.Command
	advanceDone bool
}

func (p *planner) attack() domain.Command {
	if !p.attackDone {
		p.attackCmd = p.findAttack()
		p.attackDone = true
	}
	return p.attackCmd
}

func (p *planner) advance() domain.Command {
	if !p.advanceDone {
		p.advanceCmd = p.findAdvance()
		p.advanceDone = true
	}
	return p.advanceCmd
}

// findAttack - первый свой юнит с очками атаки и первая цель, по которой
// он может стрелять. Дальность, линия огня и мораль проверяются так же, как
// в движке.
func (p *planner) findAttack() domain.Command {
	terrain := p.a.mirror.Terrain()
	for _, u := range p.own {
		if u.AttackPoints <= 0 {
			continue
		}
		for _, target := range p.enemies {
			if systems.CheckFirePosition(terrain, p.a.registry, u, target.Pos) != nil {
				continue
			}
			return domain.AttackUnitCommand{AttackerID: u.ID, DefenderID: target.ID}
		}
	}
	return nil
}

// findAdvance - первый свой юнит, до которого противник еще не достает,
// идет к ближайшей свободной клетке рядом с каким-нибудь противником.
func (p *planner) findAdvance() domain.Command {
	for _, u := range p.own {
		if u.MovePoints <= 0 || p.closeToEnemies(u) {
			continue
		}

		p.a.pathfinder.Fill(u.Pos, p.a.mirror)
		dest, ok := p.bestPos()
		if !ok {
			continue
		}
		path, ok := p.a.pathfinder.PathTo(dest)
		if !ok {
			continue
		}
		path = systems.TruncatePath(path, u.MovePoints)
		if len(path) < 2 {
			continue
		}
		return domain.MoveCommand{UnitID: u.ID, Path: path, Mode: domain.MoveFast}
	}
	return nil
}

func (p *planner) closeToEnemies(u domain.Unit) bool {
	maxDistance := p.a.registry.WeaponOf(u.TypeID).MaxDistance
	for _, target := range p.enemies {
		if u.Pos.DistanceTo(target.Pos) <= maxDistance {
			return true
		}
	}
	return false
}

// bestPos - самая дешевая достижимая свободная клетка рядом с противником.
// При равной цене побеждает найденная первой.
func (p *planner) bestPos() (domain.Position, bool) {
	terrain := p.a.mirror.Terrain()
	var (
		best     domain.Position
		bestCost int
		found    bool
	)
	for _, target := range p.enemies {
		for _, dest := range target.Pos.Neighbors() {
			if !terrain.InBounds(dest) || p.a.mirror.IsOccupied(dest) {
				continue
			}
			cost, ok := p.a.pathfinder.Cost(dest)
			if !ok {
				continue
			}
			if !found || cost < bestCost {
				best, bestCost, found = dest, cost, true
			}
		}
	}
	return best, found
}
