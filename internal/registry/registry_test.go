package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.NotNil(t, reg)
	assert.Same(t, reg, Default(), "default registry must be built once")

	assert.Equal(t, domain.UnitTypeID("soldier"), reg.DefaultUnitType())
	assert.Equal(t, []domain.UnitTypeID{"scout", "soldier", "tank"}, reg.UnitTypes())

	tank := reg.MustUnitType("tank")
	assert.Equal(t, domain.ClassVehicle, tank.Class)
	assert.Equal(t, 1, tank.Count)
	assert.Equal(t, domain.WeaponTypeID("cannon"), tank.Weapon)

	soldier := reg.MustUnitType("soldier")
	assert.Equal(t, domain.ClassInfantry, soldier.Class)
	assert.Equal(t, 3, reg.WeaponOf("soldier").MaxDistance)
	assert.Equal(t, 6, soldier.LOSRange)
	assert.Equal(t, 1, soldier.CoverLOSRange)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "unknown weapon",
			doc: `default_unit: a
weapons: []
units:
  - {id: a, class: infantry, count: 1, weapon: laser}`,
			wantErr: "unknown weapon",
		},
		{
			name: "unknown class",
			doc: `default_unit: a
weapons: [{id: w, max_distance: 1}]
units:
  - {id: a, class: robot, count: 1, weapon: w}`,
			wantErr: "unknown class",
		},
		{
			name: "missing default",
			doc: `default_unit: b
weapons: [{id: w, max_distance: 1}]
units:
  - {id: a, class: vehicle, count: 1, weapon: w}`,
			wantErr: "default unit type",
		},
		{
			name: "duplicate unit",
			doc: `default_unit: a
weapons: [{id: w, max_distance: 1}]
units:
  - {id: a, class: vehicle, count: 1, weapon: w}
  - {id: a, class: vehicle, count: 1, weapon: w}`,
			wantErr: "duplicate unit type",
		},
		{
			name:    "unknown field",
			doc:     "default_unit: a\nspeed: 3\n",
			wantErr: "failed to decode registry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, defaultTables, 0o644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	_, ok := reg.Weapon("rifle")
	assert.True(t, ok)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
