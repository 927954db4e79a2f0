package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_RebaseAndPrefix(t *testing.T) {
	p := Path{
		{Pos: Position{0, 0}, Cost: 0},
		{Pos: Position{1, 0}, Cost: 1},
		{Pos: Position{2, 0}, Cost: 3},
		{Pos: Position{3, 0}, Cost: 4},
	}

	assert.Equal(t, Position{3, 0}, p.Destination())
	assert.Equal(t, 4, p.TotalCost())

	prefix := p.Prefix(2)
	assert.Equal(t, Path{{Position{0, 0}, 0}, {Position{1, 0}, 1}}, prefix)
	prefix[0].Cost = 99
	assert.Equal(t, 0, p[0].Cost, "Prefix must copy")

	tail := p[1:].Rebase()
	assert.Equal(t, Path{{Position{1, 0}, 0}, {Position{2, 0}, 2}, {Position{3, 0}, 3}}, tail)
	assert.Equal(t, 3, tail.TotalCost())
}

func TestUnit_Clone(t *testing.T) {
	rap := 1
	u := Unit{ID: 1, ReactiveAttackPoints: &rap}
	c := u.Clone()
	*c.ReactiveAttackPoints = 5

	assert.Equal(t, 1, u.Reactive())
	assert.False(t, u.IsGhost())
	assert.True(t, (&Unit{}).IsGhost())
}

func TestUnit_ReadOnReturnedValue(t *testing.T) {
	spawn := func(rap *int) Unit { return Unit{ID: 2, ReactiveAttackPoints: rap} }
	rap := 3

	assert.Equal(t, 3, spawn(&rap).Reactive())
	assert.False(t, spawn(&rap).IsGhost())
	assert.Equal(t, 0, spawn(nil).Reactive())
	assert.True(t, spawn(nil).IsGhost())
}
