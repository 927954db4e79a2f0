package domain

import "strings"

// Terrain - тип местности клетки.
type Terrain uint8

const (
	TerrainPlain Terrain = iota
	TerrainTrees
)

var terrainStringToType = map[string]Terrain{
	"PLAIN": TerrainPlain,
	"TREES": TerrainTrees,
}

var terrainTypeToString = map[Terrain]string{
	TerrainPlain: "PLAIN",
	TerrainTrees: "TREES",
}

// ParseTerrain конвертирует строку в Terrain. Неизвестные значения считаются равниной.
func ParseTerrain(s string) (Terrain, bool) {
	val, ok := terrainStringToType[strings.ToUpper(s)]
	return val, ok
}

func (t Terrain) String() string {
	if val, ok := terrainTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// MoveCost - стоимость входа в клетку.
func (t Terrain) MoveCost() int {
	if t == TerrainTrees {
		return 2
	}
	return 1
}

// BlocksSight - клетка закрывает обзор на все, что за ней.
func (t Terrain) BlocksSight() bool {
	return t == TerrainTrees
}

// Conceals - местность скрывает детали: на дальней дистанции видна только техника.
func (t Terrain) Conceals() bool {
	return t == TerrainTrees
}

// TerrainMap - статическая карта местности. После создания партии не меняется.
type TerrainMap struct {
	Width  int
	Height int
	tiles  []Terrain
}

func NewTerrainMap(width, height int) *TerrainMap {
	return &TerrainMap{
		Width:  width,
		Height: height,
		tiles:  make([]Terrain, width*height),
	}
}

func (m *TerrainMap) GetIndex(p Position) int {
	return p.Y*m.Width + p.X
}

// InBounds проверяет, что клетка лежит внутри карты.
func (m *TerrainMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At возвращает тип местности. Для клеток за границей карты - равнина.
func (m *TerrainMap) At(p Position) Terrain {
	if !m.InBounds(p) {
		return TerrainPlain
	}
	return m.tiles[m.GetIndex(p)]
}

func (m *TerrainMap) Set(p Position, t Terrain) {
	if m.InBounds(p) {
		m.tiles[m.GetIndex(p)] = t
	}
}

// Each обходит все клетки построчно.
func (m *TerrainMap) Each(fn func(p Position)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}

// Clone возвращает независимую копию карты.
func (m *TerrainMap) Clone() *TerrainMap {
	c := &TerrainMap{Width: m.Width, Height: m.Height, tiles: make([]Terrain, len(m.tiles))}
	copy(c.tiles, m.tiles)
	return c
}
