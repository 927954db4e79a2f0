package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	sc := Default()

	assert.Equal(t, "border-skirmish", sc.Name)
	assert.Equal(t, 10, sc.Width)
	assert.Equal(t, 8, sc.Height)
	require.Len(t, sc.Players, 2)
	assert.False(t, sc.Players[0].IsAI)
	assert.True(t, sc.Players[1].IsAI)
	require.Len(t, sc.Units, 12)
	assert.Equal(t, UnitSpec{Owner: 1, Type: "scout", Pos: domain.Position{X: 9, Y: 3}}, sc.Units[8])
	require.NoError(t, sc.Validate(registry.Default()))

	m := sc.Terrain()
	assert.Equal(t, domain.TerrainTrees, m.At(domain.Position{X: 4, Y: 4}))
	assert.Equal(t, domain.TerrainTrees, m.At(domain.Position{X: 6, Y: 4}))
	assert.Equal(t, domain.TerrainPlain, m.At(domain.Position{X: 5, Y: 4}))
	assert.NotEmpty(t, sc.Raw())
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown field", "name: x\nwidth: 2\nheight: 2\nfog: true\n", "failed to decode"},
		{"empty map", "name: x\nwidth: 0\nheight: 2\nplayers: [{id: 0}, {id: 1}]\n", "map size"},
		{"single player", "name: x\nwidth: 2\nheight: 2\nplayers: [{id: 0}]\n", "at least two players"},
		{"ids out of order", "name: x\nwidth: 2\nheight: 2\nplayers: [{id: 1}, {id: 0}]\n", "turn order"},
		{"tree off map", "name: x\nwidth: 2\nheight: 2\nplayers: [{id: 0}, {id: 1}]\ntrees: [{x: 5, y: 0}]\n", "out of bounds"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	base := "name: x\nwidth: 3\nheight: 3\nplayers: [{id: 0}, {id: 1, ai: true}]\n"
	cases := []struct {
		name    string
		units   string
		wantErr string
	}{
		{"unknown type", "units: [{owner: 0, type: mech, pos: {x: 0, y: 0}}]\n", "unknown type"},
		{"unknown owner", "units: [{owner: 2, type: tank, pos: {x: 0, y: 0}}]\n", "unknown owner"},
		{"off map", "units: [{owner: 0, type: tank, pos: {x: 3, y: 0}}]\n", "out of bounds"},
		{"stacked", "units: [{owner: 0, type: tank, pos: {x: 1, y: 1}}, {owner: 1, type: tank, pos: {x: 1, y: 1}}]\n", "already taken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := Parse([]byte(base + tc.units))
			require.NoError(t, err)
			err = sc.Validate(registry.Default())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	data := "name: duel\nwidth: 4\nheight: 4\nplayers: [{id: 0, ai: true}, {id: 1, ai: true}]\n" +
		"units:\n  - {owner: 0, type: soldier, pos: {x: 0, y: 0}}\n  - {owner: 1, type: soldier, pos: {x: 3, y: 3}}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "duel", sc.Name)
	assert.Equal(t, []byte(data), sc.Raw())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWithAllAI(t *testing.T) {
	sc := Default()
	all, err := sc.WithAllAI()
	require.NoError(t, err)

	assert.True(t, all.Players[0].IsAI)
	assert.False(t, sc.Players[0].IsAI, "original scenario is untouched")

	reparsed, err := Parse(all.Raw())
	require.NoError(t, err)
	assert.True(t, reparsed.Players[0].IsAI)
	assert.Equal(t, sc.Units, reparsed.Units)
	assert.Equal(t, sc.Trees, reparsed.Trees)
}
