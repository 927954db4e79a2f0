// Package state - проекция "истины" (или ее частичной копии) из потока событий.
//
// Один и тот же тип State используется движком как авторитетное состояние
// (New) и наблюдателями как зеркало (NewMirror). Единственный мутатор - Apply.
package state

import (
	"sort"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
)

// State - карта местности и все известные юниты.
type State struct {
	terrain  *domain.TerrainMap
	registry *registry.Registry
	units    map[domain.UnitID]*domain.Unit

	// viewer == nil - полное знание. Иначе это зеркало игрока viewer:
	// чужие юниты в нем хранятся как призраки.
	viewer *domain.PlayerID
}

// New создает авторитетное состояние с полной информацией.
func New(terrain *domain.TerrainMap, reg *registry.Registry) *State {
	return &State{
		terrain:  terrain,
		registry: reg,
		units:    make(map[domain.UnitID]*domain.Unit),
	}
}

// NewMirror создает зеркало для игрока viewer. Зеркало получает свою копию карты.
func NewMirror(terrain *domain.TerrainMap, reg *registry.Registry, viewer domain.PlayerID) *State {
	s := New(terrain.Clone(), reg)
	s.viewer = &viewer
	return s
}

func (s *State) Terrain() *domain.TerrainMap {
	return s.terrain
}

func (s *State) Registry() *registry.Registry {
	return s.registry
}

// Unit возвращает копию юнита.
func (s *State) Unit(id domain.UnitID) (domain.Unit, bool) {
	u, ok := s.units[id]
	if !ok {
		return domain.Unit{}, false
	}
	return u.Clone(), true
}

// HasUnit проверяет, что юнит известен.
func (s *State) HasUnit(id domain.UnitID) bool {
	_, ok := s.units[id]
	return ok
}

// Units возвращает копии всех юнитов, упорядоченные по ID. Этот порядок -
// "порядок обхода" для ответного огня и для ИИ.
func (s *State) Units() []domain.Unit {
	ids := make([]domain.UnitID, 0, len(s.units))
	for id := range s.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	res := make([]domain.Unit, len(ids))
	for i, id := range ids {
		res[i] = s.units[id].Clone()
	}
	return res
}

// UnitsOf возвращает юниты игрока в порядке ID.
func (s *State) UnitsOf(player domain.PlayerID) []domain.Unit {
	var res []domain.Unit
	for _, u := range s.Units() {
		if u.PlayerID == player {
			res = append(res, u)
		}
	}
	return res
}

// UnitsAt возвращает юниты в клетке.
func (s *State) UnitsAt(pos domain.Position) []domain.Unit {
	var res []domain.Unit
	for _, u := range s.Units() {
		if u.Pos == pos {
			res = append(res, u)
		}
	}
	return res
}

// IsOccupied проверяет, занята ли клетка каким-либо известным юнитом.
func (s *State) IsOccupied(pos domain.Position) bool {
	for _, u := range s.units {
		if u.Pos == pos {
			return true
		}
	}
	return false
}

// PlayersWithUnits возвращает игроков, у которых остались юниты.
func (s *State) PlayersWithUnits() map[domain.PlayerID]int {
	res := make(map[domain.PlayerID]int)
	for _, u := range s.units {
		res[u.PlayerID]++
	}
	return res
}

// Len - число известных юнитов.
func (s *State) Len() int {
	return len(s.units)
}

// Apply применяет событие. Проверок законности здесь нет: событие уже
// выпущено движком. Нарушение инварианта - паника с *InvariantError.
func (s *State) Apply(e domain.Event) {
	e.Accept(reducer{s: s})
}

// full - получает ли юнит этого владельца полную информацию.
func (s *State) full(owner domain.PlayerID) bool {
	return s.viewer == nil || *s.viewer == owner
}

func (s *State) mustUnit(event domain.EventType, id domain.UnitID) *domain.Unit {
	u, ok := s.units[id]
	if !ok {
		violate(event, id, "unknown unit")
	}
	return u
}
