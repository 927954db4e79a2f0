// Package fow - туман войны: видимость клеток для одного игрока и фильтрация
// потока событий "истины" в то, что этот игрок имеет право узнать.
package fow

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/systems"
)

// TileVisibility - насколько хорошо игрок видит клетку.
type TileVisibility uint8

const (
	VisibilityNone TileVisibility = iota
	VisibilityNormal
	VisibilityExcellent
)

var visibilityToString = map[TileVisibility]string{
	VisibilityNone:      "NONE",
	VisibilityNormal:    "NORMAL",
	VisibilityExcellent: "EXCELLENT",
}

func (v TileVisibility) String() string {
	if val, ok := visibilityToString[v]; ok {
		return val
	}
	return "UNKNOWN"
}

// Classify - видимость клетки на расстоянии distance от наблюдателя типа t.
func Classify(t registry.UnitType, distance int, terrain domain.Terrain) TileVisibility {
	switch {
	case distance <= t.CoverLOSRange:
		return VisibilityExcellent
	case distance <= t.LOSRange:
		if terrain.Conceals() {
			return VisibilityNormal
		}
		return VisibilityExcellent
	default:
		return VisibilityNone
	}
}

// Reveals - политика видимости: отличная видимость показывает любой юнит,
// нормальная - только технику.
func Reveals(v TileVisibility, class domain.UnitClass) bool {
	switch v {
	case VisibilityExcellent:
		return true
	case VisibilityNormal:
		return class == domain.ClassVehicle
	default:
		return false
	}
}

// Grid - видимость всех клеток карты для одного игрока.
type Grid struct {
	terrain *domain.TerrainMap
	tiles   []TileVisibility
}

func NewGrid(terrain *domain.TerrainMap) *Grid {
	return &Grid{
		terrain: terrain,
		tiles:   make([]TileVisibility, terrain.Width*terrain.Height),
	}
}

// Clear делает всю карту невидимой.
func (g *Grid) Clear() {
	for i := range g.tiles {
		g.tiles[i] = VisibilityNone
	}
}

// At возвращает видимость клетки. За границей карты - VisibilityNone.
func (g *Grid) At(pos domain.Position) TileVisibility {
	if !g.terrain.InBounds(pos) {
		return VisibilityNone
	}
	return g.tiles[g.terrain.GetIndex(pos)]
}

// IsVisible - виден ли юнит класса class в клетке pos.
func (g *Grid) IsVisible(class domain.UnitClass, pos domain.Position) bool {
	return Reveals(g.At(pos), class)
}

// Project добавляет поле зрения юнита типа t, стоящего в origin.
// Итог по клетке - максимум по всем источникам.
func (g *Grid) Project(t registry.UnitType, origin domain.Position) {
	systems.ComputeFOV(g.terrain, origin, t.LOSRange, func(pos domain.Position, dist int) {
		v := Classify(t, dist, g.terrain.At(pos))
		idx := g.terrain.GetIndex(pos)
		if v > g.tiles[idx] {
			g.tiles[idx] = v
		}
	})
}

// VisibleCount - число клеток с ненулевой видимостью.
func (g *Grid) VisibleCount() int {
	n := 0
	for _, v := range g.tiles {
		if v != VisibilityNone {
			n++
		}
	}
	return n
}
