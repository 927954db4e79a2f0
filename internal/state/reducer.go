package state

import "github.com/gitter-badger/zoc/internal/domain"

// moraleRecovery - прирост морали в начале своего хода.
const moraleRecovery = 10

// initialMorale - мораль нового юнита.
const initialMorale = 100

// reducer реализует domain.EventHandler поверх State.
type reducer struct {
	s *State
}

func (r reducer) OnMove(e domain.MoveEvent) {
	u := r.s.mustUnit(domain.EventMove, e.UnitID)
	if len(e.Path) == 0 {
		violate(domain.EventMove, e.UnitID, "empty path")
	}

	u.Pos = e.Path.Destination()
	u.MovePoints -= e.Path.TotalCost() * e.Mode.CostMultiplier()
	if u.MovePoints < 0 {
		if !u.IsGhost() {
			violate(domain.EventMove, e.UnitID, "negative move points")
		}
		// Настоящие очки призрака наблюдателю неизвестны.
		u.MovePoints = 0
	}
}

func (r reducer) OnEndTurn(e domain.EndTurnEvent) {
	reg := r.s.registry

	// 1. Новый активный игрок: очки из таблиц, мораль растет.
	for _, u := range r.s.units {
		if u.PlayerID != e.NewID {
			continue
		}
		t := reg.MustUnitType(u.TypeID)
		u.MovePoints = t.MovePoints
		u.AttackPoints = t.AttackPoints
		if u.ReactiveAttackPoints != nil {
			*u.ReactiveAttackPoints = t.ReactiveAttackPoints
		}
		u.Morale += moraleRecovery
	}

	// 2. Закончивший ход: неизрасходованные очки атаки уходят в реактивные.
	for _, u := range r.s.units {
		if u.PlayerID != e.OldID {
			continue
		}
		if u.ReactiveAttackPoints != nil {
			*u.ReactiveAttackPoints += u.AttackPoints
		}
		u.AttackPoints = 0
	}
}

func (r reducer) OnCreateUnit(e domain.CreateUnitEvent) {
	if _, exists := r.s.units[e.UnitID]; exists {
		violate(domain.EventCreateUnit, e.UnitID, "unit already exists")
	}
	r.s.units[e.UnitID] = r.s.newUnit(e.UnitID, e.Pos, e.TypeID, e.PlayerID, r.s.full(e.PlayerID))
}

func (r reducer) OnAttackUnit(e domain.AttackUnitEvent) {
	defender := r.s.mustUnit(domain.EventAttackUnit, e.DefenderID)

	defender.Count -= e.Killed
	defender.Morale -= e.Suppression
	if e.RemoveMovePoints {
		defender.MovePoints = 0
	}
	if defender.Count <= 0 {
		delete(r.s.units, e.DefenderID)
	}

	attackerID, ok := e.Attacker()
	if !ok {
		return // засада: стрелок неизвестен
	}
	attacker, ok := r.s.units[attackerID]
	if !ok {
		if r.s.viewer == nil {
			violate(domain.EventAttackUnit, attackerID, "unknown attacker")
		}
		return
	}

	switch e.Mode {
	case domain.FireActive:
		attacker.AttackPoints--
		if attacker.AttackPoints < 0 {
			if !attacker.IsGhost() {
				violate(domain.EventAttackUnit, attackerID, "negative attack points")
			}
			attacker.AttackPoints = 0
		}
	case domain.FireReactive:
		if attacker.ReactiveAttackPoints != nil {
			*attacker.ReactiveAttackPoints--
			if *attacker.ReactiveAttackPoints < 0 {
				violate(domain.EventAttackUnit, attackerID, "negative reactive attack points")
			}
		}
	}
}

func (r reducer) OnShowUnit(e domain.ShowUnitEvent) {
	if u, exists := r.s.units[e.UnitID]; exists {
		// Свою полную запись не трогаем, призрака переносим на новое место.
		if u.IsGhost() {
			u.Pos = e.Pos
		}
		return
	}
	r.s.units[e.UnitID] = r.s.newUnit(e.UnitID, e.Pos, e.TypeID, e.PlayerID, false)
}

func (r reducer) OnHideUnit(e domain.HideUnitEvent) {
	u := r.s.mustUnit(domain.EventHideUnit, e.UnitID)
	if !u.IsGhost() {
		return
	}
	delete(r.s.units, e.UnitID)
}

func (s *State) newUnit(id domain.UnitID, pos domain.Position, typeID domain.UnitTypeID, owner domain.PlayerID, full bool) *domain.Unit {
	t := s.registry.MustUnitType(typeID)
	u := &domain.Unit{
		ID:           id,
		Pos:          pos,
		PlayerID:     owner,
		TypeID:       typeID,
		Count:        t.Count,
		MovePoints:   t.MovePoints,
		AttackPoints: t.AttackPoints,
		Morale:       initialMorale,
	}
	if full {
		rap := t.ReactiveAttackPoints
		u.ReactiveAttackPoints = &rap
	}
	return u
}
