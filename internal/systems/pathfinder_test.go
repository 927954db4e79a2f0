package systems

import (
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type occupied map[domain.Position]bool

func (o occupied) IsOccupied(pos domain.Position) bool { return o[pos] }

func TestPathfinder_Corridor(t *testing.T) {
	// Карта в один ряд: шаги возможны только на восток и запад.
	m := domain.NewTerrainMap(5, 1)
	m.Set(domain.Position{X: 2, Y: 0}, domain.TerrainTrees)

	pf := NewPathfinder(m)
	pf.Fill(domain.Position{X: 0, Y: 0}, occupied{})

	path, ok := pf.PathTo(domain.Position{X: 4, Y: 0})
	require.True(t, ok)
	assert.Equal(t, domain.Path{
		{Pos: domain.Position{X: 0, Y: 0}, Cost: 0},
		{Pos: domain.Position{X: 1, Y: 0}, Cost: 1},
		{Pos: domain.Position{X: 2, Y: 0}, Cost: 3},
		{Pos: domain.Position{X: 3, Y: 0}, Cost: 4},
		{Pos: domain.Position{X: 4, Y: 0}, Cost: 5},
	}, path)
	assert.True(t, PathCostMatches(m, path))

	pf.Fill(domain.Position{X: 0, Y: 0}, occupied{{X: 3, Y: 0}: true})
	_, ok = pf.PathTo(domain.Position{X: 4, Y: 0})
	assert.False(t, ok, "occupied tile blocks the corridor")
	cost, ok := pf.Cost(domain.Position{X: 2, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, 3, cost)
}

func TestPathfinder_GoesAroundTrees(t *testing.T) {
	m := treeMap()
	pf := NewPathfinder(m)
	from := domain.Position{X: 3, Y: 4}
	to := domain.Position{X: 5, Y: 4}
	pf.Fill(from, occupied{})

	path, ok := pf.PathTo(to)
	require.True(t, ok)
	assert.Equal(t, from, path[0].Pos)
	assert.Equal(t, to, path.Destination())
	assert.True(t, PathCostMatches(m, path))

	cost, _ := pf.Cost(to)
	assert.Equal(t, cost, path.TotalCost())
	assert.LessOrEqual(t, cost, 3, "going through (4,4) costs 3")
}

func TestTruncatePath(t *testing.T) {
	path := domain.Path{
		{Pos: domain.Position{X: 0, Y: 0}, Cost: 0},
		{Pos: domain.Position{X: 1, Y: 0}, Cost: 1},
		{Pos: domain.Position{X: 2, Y: 0}, Cost: 3},
		{Pos: domain.Position{X: 3, Y: 0}, Cost: 4},
	}

	assert.Len(t, TruncatePath(path, 10), 4)
	assert.Len(t, TruncatePath(path, 4), 4)
	assert.Len(t, TruncatePath(path, 3), 3)
	assert.Len(t, TruncatePath(path, 2), 2)
	assert.Len(t, TruncatePath(path, 0), 1)
}

func TestPathCostMatches(t *testing.T) {
	m := domain.NewTerrainMap(5, 1)
	good := domain.Path{{Pos: domain.Position{X: 0, Y: 0}}, {Pos: domain.Position{X: 1, Y: 0}, Cost: 1}}
	assert.True(t, PathCostMatches(m, good))

	cheated := domain.Path{{Pos: domain.Position{X: 0, Y: 0}}, {Pos: domain.Position{X: 1, Y: 0}, Cost: 0}}
	assert.False(t, PathCostMatches(m, cheated))

	jump := domain.Path{{Pos: domain.Position{X: 0, Y: 0}}, {Pos: domain.Position{X: 2, Y: 0}, Cost: 2}}
	assert.False(t, PathCostMatches(m, jump))

	assert.False(t, PathCostMatches(m, nil))
}
