package systems

import (
	"container/heap"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// OccupancyChecker - все, что умеет сказать, занята ли клетка юнитом.
type OccupancyChecker interface {
	IsOccupied(pos domain.Position) bool
}

const unreachable = -1

// Pathfinder - поиск путей с учетом стоимости местности (Дейкстра по шести
// направлениям). Fill считает стоимости от одной точки до всех клеток,
// после чего PathTo восстанавливает путь до любой достижимой клетки.
type Pathfinder struct {
	terrain *domain.TerrainMap
	costs   []int
	prev    []int
}

func NewPathfinder(m *domain.TerrainMap) *Pathfinder {
	n := m.Width * m.Height
	return &Pathfinder{
		terrain: m,
		costs:   make([]int, n),
		prev:    make([]int, n),
	}
}

// StepCost - стоимость шага в клетку to.
func StepCost(m *domain.TerrainMap, to domain.Position) int {
	return m.At(to).MoveCost()
}

// Fill заполняет карту стоимостей от origin. Клетки, занятые юнитами,
// непроходимы (кроме самой origin).
func (pf *Pathfinder) Fill(origin domain.Position, occ OccupancyChecker) {
	for i := range pf.costs {
		pf.costs[i] = unreachable
		pf.prev[i] = -1
	}
	if !pf.terrain.InBounds(origin) {
		return
	}

	pq := make(pathQueue, 0)
	heap.Init(&pq)
	seq := 0

	pf.costs[pf.terrain.GetIndex(origin)] = 0
	heap.Push(&pq, &pathItem{Pos: origin, Cost: 0, Seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pathItem)
		idx := pf.terrain.GetIndex(item.Pos)
		if item.Cost > pf.costs[idx] {
			continue // устаревшая запись
		}

		for _, next := range item.Pos.Neighbors() {
			if !pf.terrain.InBounds(next) || occ.IsOccupied(next) {
				continue
			}
			nIdx := pf.terrain.GetIndex(next)
			cost := item.Cost + StepCost(pf.terrain, next)
			if pf.costs[nIdx] != unreachable && pf.costs[nIdx] <= cost {
				continue
			}
			pf.costs[nIdx] = cost
			pf.prev[nIdx] = idx
			seq++
			heap.Push(&pq, &pathItem{Pos: next, Cost: cost, Seq: seq})
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "path_system",
		"origin":    origin,
	}).Debug("Path map filled")
}

// Cost возвращает стоимость пути до pos, либо false, если клетка недостижима.
func (pf *Pathfinder) Cost(pos domain.Position) (int, bool) {
	if !pf.terrain.InBounds(pos) {
		return 0, false
	}
	c := pf.costs[pf.terrain.GetIndex(pos)]
	return c, c != unreachable
}

// PathTo восстанавливает путь от origin до dest с накопленными стоимостями.
func (pf *Pathfinder) PathTo(dest domain.Position) (domain.Path, bool) {
	if _, ok := pf.Cost(dest); !ok {
		return nil, false
	}

	var reversed domain.Path
	for idx := pf.terrain.GetIndex(dest); idx != -1; idx = pf.prev[idx] {
		pos := domain.Position{X: idx % pf.terrain.Width, Y: idx / pf.terrain.Width}
		reversed = append(reversed, domain.PathNode{Pos: pos, Cost: pf.costs[idx]})
	}

	path := make(domain.Path, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path, true
}

// TruncatePath оставляет самый длинный префикс пути, стоимость которого не
// превышает movePoints.
func TruncatePath(path domain.Path, movePoints int) domain.Path {
	n := 0
	for _, node := range path {
		if node.Cost > movePoints {
			break
		}
		n++
	}
	return path.Prefix(n)
}

// PathCostMatches проверяет, что путь непрерывен и его накопленные стоимости
// совпадают со стоимостями местности.
func PathCostMatches(m *domain.TerrainMap, path domain.Path) bool {
	if len(path) == 0 || path[0].Cost != 0 {
		return false
	}
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		if !m.InBounds(cur.Pos) || !prev.Pos.IsAdjacent(cur.Pos) {
			return false
		}
		if cur.Cost != prev.Cost+StepCost(m, cur.Pos) {
			return false
		}
	}
	return true
}
