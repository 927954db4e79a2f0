package systems

import (
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func treeMap() *domain.TerrainMap {
	m := domain.NewTerrainMap(10, 8)
	for _, p := range []domain.Position{{X: 4, Y: 3}, {X: 4, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}, {X: 6, Y: 4}} {
		m.Set(p, domain.TerrainTrees)
	}
	return m
}

func TestHasLineOfSight(t *testing.T) {
	m := treeMap()

	assert.True(t, HasLineOfSight(m, domain.Position{X: 2, Y: 3}, domain.Position{X: 2, Y: 3}))
	assert.True(t, HasLineOfSight(m, domain.Position{X: 0, Y: 3}, domain.Position{X: 3, Y: 3}))
	assert.True(t, HasLineOfSight(m, domain.Position{X: 0, Y: 3}, domain.Position{X: 4, Y: 3}), "tree at the end point does not block")
	assert.False(t, HasLineOfSight(m, domain.Position{X: 0, Y: 3}, domain.Position{X: 5, Y: 3}))
	assert.False(t, HasLineOfSight(m, domain.Position{X: 5, Y: 3}, domain.Position{X: 0, Y: 3}))
	assert.True(t, HasLineOfSight(m, domain.Position{X: 0, Y: 0}, domain.Position{X: 9, Y: 0}))
}

func TestComputeFOV(t *testing.T) {
	m := treeMap()
	origin := domain.Position{X: 2, Y: 3}

	seen := make(map[domain.Position]int)
	first := true
	ComputeFOV(m, origin, 6, func(pos domain.Position, dist int) {
		if first {
			assert.Equal(t, origin, pos, "origin is visited first")
			first = false
		}
		seen[pos] = dist
	})

	assert.Equal(t, 0, seen[origin])
	assert.Contains(t, seen, domain.Position{X: 4, Y: 3})
	assert.Equal(t, 2, seen[domain.Position{X: 4, Y: 3}])
	assert.NotContains(t, seen, domain.Position{X: 5, Y: 3}, "hidden behind trees")
	assert.NotContains(t, seen, domain.Position{X: 9, Y: 3}, "out of range")

	for pos, dist := range seen {
		assert.LessOrEqual(t, dist, 6)
		assert.Equal(t, origin.DistanceTo(pos), dist)
		assert.True(t, m.InBounds(pos))
	}
}

func TestComputeFOV_ZeroRadius(t *testing.T) {
	var visited []domain.Position
	ComputeFOV(treeMap(), domain.Position{X: 1, Y: 1}, 0, func(pos domain.Position, _ int) {
		visited = append(visited, pos)
	})
	assert.Equal(t, []domain.Position{{X: 1, Y: 1}}, visited)
}
