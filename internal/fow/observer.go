package fow

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/state"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Observer - движок видимости одного игрока. Получает все события "истины"
// строго в порядке выпуска и складывает в очередь только то, что игроку
// положено знать.
//
// Observer не читает авторитетное состояние движка: для фильтрации он ведет
// собственную проекцию, построенную из тех же событий.
type Observer struct {
	player   domain.PlayerID
	registry *registry.Registry
	truth    *state.State
	grid     *Grid

	// view - то, что игрок знает: проекция из уже отфильтрованных событий.
	// Призраки в ней - ровно те чужие юниты, о которых игроку сообщено.
	view  *state.State
	queue []domain.Event
	log   *logrus.Entry
}

func NewObserver(player domain.PlayerID, terrain *domain.TerrainMap, reg *registry.Registry) *Observer {
	t := terrain.Clone()
	return &Observer{
		player:   player,
		registry: reg,
		truth:    state.New(t, reg),
		grid:     NewGrid(t),
		view:     state.NewMirror(t, reg, player),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "visibility",
			"player":    player,
		}),
	}
}

func (o *Observer) Player() domain.PlayerID {
	return o.player
}

// Visibility возвращает видимость клетки для этого игрока.
func (o *Observer) Visibility(pos domain.Position) TileVisibility {
	return o.grid.At(pos)
}

// CanSee - увидел бы игрок юнит типа typeID в клетке pos.
func (o *Observer) CanSee(typeID domain.UnitTypeID, pos domain.Position) bool {
	return o.grid.IsVisible(o.registry.MustUnitType(typeID).Class, pos)
}

// VisibleEnemies возвращает чужие юниты, о которых игроку сейчас сообщено,
// по возрастанию id.
func (o *Observer) VisibleEnemies() []domain.UnitID {
	var ids []domain.UnitID
	for _, u := range o.view.Units() {
		if u.PlayerID != o.player {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func (o *Observer) isShown(id domain.UnitID) bool {
	u, ok := o.view.Unit(id)
	return ok && u.PlayerID != o.player
}

// Observe пропускает одно событие "истины" через фильтр и возвращает
// события для игрока. Они же добавляются в очередь (см. Drain).
func (o *Observer) Observe(e domain.Event) []domain.Event {
	// 1. Фильтр по состоянию ДО события
	f := &filter{o: o, active: make(map[domain.UnitID]bool)}
	e.Accept(f)

	// 2. Своя проекция истины
	o.truth.Apply(e)

	// 3. Видимость меняется только от своих юнитов и в начале своего хода
	e.Accept(sight{o: o})

	// 4. Пассивное обнаружение: кто появился или пропал без собственного действия
	o.syncVisibleEnemies(f)

	if len(f.out) > 0 {
		o.log.WithFields(logrus.Fields{
			"event":    e.Type(),
			"filtered": len(f.out),
		}).Debug("Event filtered")
	}

	o.queue = append(o.queue, f.out...)
	return f.out
}

// Drain забирает накопленные события из очереди.
func (o *Observer) Drain() []domain.Event {
	out := o.queue
	o.queue = nil
	return out
}

// Pending - сколько событий ждет в очереди.
func (o *Observer) Pending() int {
	return len(o.queue)
}

func (o *Observer) syncVisibleEnemies(f *filter) {
	for _, u := range o.truth.Units() {
		if u.PlayerID == o.player || f.active[u.ID] {
			continue
		}
		visible := o.CanSee(u.TypeID, u.Pos)
		switch {
		case visible && !o.isShown(u.ID):
			f.show(u, u.Pos)
		case !visible && o.isShown(u.ID):
			f.hide(u.ID)
		}
	}

	// Погибший юнит обычно уходит из view вместе с AttackUnit, но число
	// бойцов у призрака может быть устаревшим: такой призрак снимаем явно.
	for _, id := range o.VisibleEnemies() {
		if !o.truth.HasUnit(id) {
			f.hide(id)
		}
	}
}

// rebuild - полный пересчет видимости от всех своих юнитов.
func (o *Observer) rebuild() {
	o.grid.Clear()
	for _, u := range o.truth.UnitsOf(o.player) {
		o.grid.Project(o.registry.MustUnitType(u.TypeID), u.Pos)
	}
	o.log.WithField("visible_tiles", o.grid.VisibleCount()).Debug("Visibility rebuilt")
}

// sight обновляет сетку видимости после применения события.
type sight struct {
	o *Observer
}

func (s sight) OnMove(e domain.MoveEvent) {
	u, ok := s.o.truth.Unit(e.UnitID)
	if !ok || u.PlayerID != s.o.player {
		return
	}
	t := s.o.registry.MustUnitType(u.TypeID)
	for _, node := range e.Path {
		s.o.grid.Project(t, node.Pos)
	}
}

func (s sight) OnEndTurn(e domain.EndTurnEvent) {
	if e.NewID == s.o.player {
		s.o.rebuild()
	}
}

func (s sight) OnCreateUnit(e domain.CreateUnitEvent) {
	if e.PlayerID == s.o.player {
		s.o.grid.Project(s.o.registry.MustUnitType(e.TypeID), e.Pos)
	}
}

func (s sight) OnAttackUnit(domain.AttackUnitEvent) {}
func (s sight) OnShowUnit(domain.ShowUnitEvent)     {}
func (s sight) OnHideUnit(domain.HideUnitEvent)     {}
