package domain

import "math"

// Position - координаты клетки в гекс-сетке (offset-координаты "odd-r":
// нечетные ряды сдвинуты на полклетки вправо).
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Direction - одно из шести направлений гекса.
type Direction uint8

const (
	DirE Direction = iota
	DirNE
	DirNW
	DirW
	DirSW
	DirSE
)

// Directions - все направления в фиксированном порядке обхода.
var Directions = [6]Direction{DirE, DirNE, DirNW, DirW, DirSW, DirSE}

var directionNames = map[Direction]string{
	DirE:  "E",
	DirNE: "NE",
	DirNW: "NW",
	DirW:  "W",
	DirSW: "SW",
	DirSE: "SE",
}

func (d Direction) String() string {
	if val, ok := directionNames[d]; ok {
		return val
	}
	return "UNKNOWN"
}

// cube - кубические координаты, x + y + z == 0.
type cube struct {
	x, y, z int
}

var cubeDirections = [6]cube{
	DirE:  {1, -1, 0},
	DirNE: {1, 0, -1},
	DirNW: {0, 1, -1},
	DirW:  {-1, 1, 0},
	DirSW: {-1, 0, 1},
	DirSE: {0, -1, 1},
}

func (p Position) toCube() cube {
	x := p.X - (p.Y-(p.Y&1))/2
	z := p.Y
	return cube{x: x, y: -x - z, z: z}
}

func (c cube) toPosition() Position {
	return Position{X: c.x + (c.z-(c.z&1))/2, Y: c.z}
}

// Neighbor возвращает соседнюю клетку в направлении dir. Границы карты не проверяются.
func (p Position) Neighbor(dir Direction) Position {
	c := p.toCube()
	d := cubeDirections[dir]
	return cube{x: c.x + d.x, y: c.y + d.y, z: c.z + d.z}.toPosition()
}

// Neighbors возвращает все шесть соседей в порядке Directions.
func (p Position) Neighbors() [6]Position {
	var res [6]Position
	for i, dir := range Directions {
		res[i] = p.Neighbor(dir)
	}
	return res
}

// DistanceTo возвращает гекс-дистанцию (число шагов) до другой клетки.
func (p Position) DistanceTo(other Position) int {
	a, b := p.toCube(), other.toCube()
	return (abs(a.x-b.x) + abs(a.y-b.y) + abs(a.z-b.z)) / 2
}

// IsAdjacent возвращает true, если клетки соседние.
func (p Position) IsAdjacent(other Position) bool {
	return p.DistanceTo(other) == 1
}

// Line возвращает клетки прямой между центрами a и b, включая оба конца.
func Line(a, b Position) []Position {
	n := a.DistanceTo(b)
	if n == 0 {
		return []Position{a}
	}

	ac, bc := a.toCube(), b.toCube()
	// Небольшой сдвиг, чтобы прямая, идущая точно по ребру, округлялась
	// всегда в одну сторону.
	const ex, ey, ez = 1e-6, 2e-6, -3e-6

	res := make([]Position, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := lerp(float64(ac.x)+ex, float64(bc.x)+ex, t)
		y := lerp(float64(ac.y)+ey, float64(bc.y)+ey, t)
		z := lerp(float64(ac.z)+ez, float64(bc.z)+ez, t)
		res = append(res, cubeRound(x, y, z).toPosition())
	}
	return res
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func cubeRound(x, y, z float64) cube {
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return cube{x: int(rx), y: int(ry), z: int(rz)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
