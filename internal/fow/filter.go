package fow

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/state"
)

// filter превращает одно событие "истины" в события для игрока.
// active - юниты, о видимости которых это событие уже позаботилось само;
// пассивная синхронизация их не трогает.
type filter struct {
	o      *Observer
	out    []domain.Event
	active map[domain.UnitID]bool
}

func (f *filter) emit(e domain.Event) {
	f.o.view.Apply(e)
	f.out = append(f.out, e)
}

func (f *filter) show(u domain.Unit, pos domain.Position) {
	f.emit(domain.ShowUnitEvent{UnitID: u.ID, Pos: pos, TypeID: u.TypeID, PlayerID: u.PlayerID})
}

func (f *filter) hide(id domain.UnitID) {
	f.emit(domain.HideUnitEvent{UnitID: id})
}

func (f *filter) unit(event domain.EventType, id domain.UnitID) domain.Unit {
	u, ok := f.o.truth.Unit(id)
	if !ok {
		f.o.log.WithField("unit_id", id).Errorf("%s event references unknown unit", event)
		panic(&state.InvariantError{Event: event, UnitID: id, Reason: "unknown unit in visibility filter"})
	}
	return u
}

func (f *filter) OnMove(e domain.MoveEvent) {
	mover := f.unit(domain.EventMove, e.UnitID)
	if mover.PlayerID == f.o.player {
		f.emit(e)
		return
	}
	f.active[mover.ID] = true
	f.segmentMove(e, mover)
}

// segmentMove режет чужой путь на видимые куски. На переходе
// невидимо->видимо юнит показывается в последней невидимой клетке и идет
// дальше уже на глазах; на переходе видимо->невидимо доходит до первой
// невидимой клетки и скрывается.
func (f *filter) segmentMove(e domain.MoveEvent, mover domain.Unit) {
	class := f.o.registry.MustUnitType(mover.TypeID).Class
	vis := make([]bool, len(e.Path))
	for i, node := range e.Path {
		vis[i] = f.o.grid.IsVisible(class, node.Pos)
	}

	move := func(sub domain.Path) {
		f.emit(domain.MoveEvent{UnitID: mover.ID, Path: sub.Rebase(), Mode: e.Mode})
	}

	var sub domain.Path
	switch {
	case vis[0]:
		if !f.o.isShown(mover.ID) {
			f.show(mover, e.Path[0].Pos)
		}
		sub = domain.Path{e.Path[0]}
	case f.o.isShown(mover.ID):
		// Призрак остался там, где юнита уже не видно.
		f.hide(mover.ID)
	}

	for i := 1; i < len(e.Path); i++ {
		prev, next := vis[i-1], vis[i]
		if !prev && next {
			f.show(mover, e.Path[i-1].Pos)
			sub = domain.Path{e.Path[i-1]}
		}
		if prev || next {
			sub = append(sub, e.Path[i])
		}
		if prev && !next {
			move(sub)
			sub = nil
			f.hide(mover.ID)
		}
	}
	if len(sub) > 0 {
		move(sub)
	}
}

func (f *filter) OnEndTurn(e domain.EndTurnEvent) {
	f.emit(e)
}

func (f *filter) OnCreateUnit(e domain.CreateUnitEvent) {
	if e.PlayerID == f.o.player {
		f.emit(e)
		return
	}
	if !f.o.CanSee(e.TypeID, e.Pos) {
		return
	}
	f.emit(e)
	f.active[e.UnitID] = true
}

func (f *filter) OnAttackUnit(e domain.AttackUnitEvent) {
	if attackerID, ok := e.Attacker(); ok {
		f.reveal(f.unit(domain.EventAttackUnit, attackerID))
	}
	f.reveal(f.unit(domain.EventAttackUnit, e.DefenderID))
	f.emit(e)
}

// reveal показывает участника атаки, если игрок его еще не видел.
func (f *filter) reveal(u domain.Unit) {
	f.active[u.ID] = true
	if u.PlayerID == f.o.player || f.o.isShown(u.ID) {
		return
	}
	f.show(u, u.Pos)
}

// ShowUnit и HideUnit порождаются только фильтром, в потоке истины их нет.
func (f *filter) OnShowUnit(e domain.ShowUnitEvent) {
	f.o.log.WithField("unit_id", e.UnitID).Warn("Synthetic SHOW_UNIT in ground-truth stream ignored")
}

func (f *filter) OnHideUnit(e domain.HideUnitEvent) {
	f.o.log.WithField("unit_id", e.UnitID).Warn("Synthetic HIDE_UNIT in ground-truth stream ignored")
}
