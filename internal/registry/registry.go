// Package registry хранит статические таблицы типов юнитов и оружия.
// Реестр строится один раз при старте и дальше только читается.
package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTables []byte

// WeaponType - характеристики оружия.
type WeaponType struct {
	ID            domain.WeaponTypeID
	MaxDistance   int
	Accuracy      int
	ArmorPiercing int
	Damage        int
}

// UnitType - характеристики типа юнита.
type UnitType struct {
	ID                   domain.UnitTypeID
	Class                domain.UnitClass
	Count                int
	Size                 int
	Armor                int
	Toughness            int
	WeaponSkill          int
	Weapon               domain.WeaponTypeID
	MovePoints           int
	AttackPoints         int
	ReactiveAttackPoints int
	LOSRange             int
	CoverLOSRange        int
}

// Registry - неизменяемый набор таблиц. Все методы безопасны для
// одновременного чтения.
type Registry struct {
	units       map[domain.UnitTypeID]UnitType
	weapons     map[domain.WeaponTypeID]WeaponType
	defaultUnit domain.UnitTypeID
}

type weaponDoc struct {
	ID            string `yaml:"id"`
	MaxDistance   int    `yaml:"max_distance"`
	Accuracy      int    `yaml:"accuracy"`
	ArmorPiercing int    `yaml:"armor_piercing"`
	Damage        int    `yaml:"damage"`
}

type unitDoc struct {
	ID                   string `yaml:"id"`
	Class                string `yaml:"class"`
	Count                int    `yaml:"count"`
	Size                 int    `yaml:"size"`
	Armor                int    `yaml:"armor"`
	Toughness            int    `yaml:"toughness"`
	WeaponSkill          int    `yaml:"weapon_skill"`
	Weapon               string `yaml:"weapon"`
	MovePoints           int    `yaml:"move_points"`
	AttackPoints         int    `yaml:"attack_points"`
	ReactiveAttackPoints int    `yaml:"reactive_attack_points"`
	LOSRange             int    `yaml:"los_range"`
	CoverLOSRange        int    `yaml:"cover_los_range"`
}

type tablesDoc struct {
	DefaultUnit string      `yaml:"default_unit"`
	Weapons     []weaponDoc `yaml:"weapons"`
	Units       []unitDoc   `yaml:"units"`
}

// Load читает таблицы из YAML и проверяет ссылки между ними.
func Load(r io.Reader) (*Registry, error) {
	var doc tablesDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	reg := &Registry{
		units:       make(map[domain.UnitTypeID]UnitType, len(doc.Units)),
		weapons:     make(map[domain.WeaponTypeID]WeaponType, len(doc.Weapons)),
		defaultUnit: domain.UnitTypeID(doc.DefaultUnit),
	}

	for _, w := range doc.Weapons {
		id := domain.WeaponTypeID(w.ID)
		if _, dup := reg.weapons[id]; dup {
			return nil, fmt.Errorf("duplicate weapon type %q", w.ID)
		}
		if w.MaxDistance <= 0 {
			return nil, fmt.Errorf("weapon %q: max_distance must be positive", w.ID)
		}
		reg.weapons[id] = WeaponType{
			ID:            id,
			MaxDistance:   w.MaxDistance,
			Accuracy:      w.Accuracy,
			ArmorPiercing: w.ArmorPiercing,
			Damage:        w.Damage,
		}
	}

	for _, u := range doc.Units {
		id := domain.UnitTypeID(u.ID)
		if _, dup := reg.units[id]; dup {
			return nil, fmt.Errorf("duplicate unit type %q", u.ID)
		}
		class, ok := domain.ParseUnitClass(u.Class)
		if !ok {
			return nil, fmt.Errorf("unit %q: unknown class %q", u.ID, u.Class)
		}
		if _, ok := reg.weapons[domain.WeaponTypeID(u.Weapon)]; !ok {
			return nil, fmt.Errorf("unit %q: unknown weapon %q", u.ID, u.Weapon)
		}
		if u.Count <= 0 {
			return nil, fmt.Errorf("unit %q: count must be positive", u.ID)
		}
		if u.CoverLOSRange > u.LOSRange {
			return nil, fmt.Errorf("unit %q: cover_los_range exceeds los_range", u.ID)
		}
		reg.units[id] = UnitType{
			ID:                   id,
			Class:                class,
			Count:                u.Count,
			Size:                 u.Size,
			Armor:                u.Armor,
			Toughness:            u.Toughness,
			WeaponSkill:          u.WeaponSkill,
			Weapon:               domain.WeaponTypeID(u.Weapon),
			MovePoints:           u.MovePoints,
			AttackPoints:         u.AttackPoints,
			ReactiveAttackPoints: u.ReactiveAttackPoints,
			LOSRange:             u.LOSRange,
			CoverLOSRange:        u.CoverLOSRange,
		}
	}

	if _, ok := reg.units[reg.defaultUnit]; !ok {
		return nil, fmt.Errorf("default unit type %q is not defined", doc.DefaultUnit)
	}

	logger.Log.WithField("component", "registry").
		WithField("unit_types", len(reg.units)).
		WithField("weapon_types", len(reg.weapons)).
		Debug("Registry loaded")

	return reg, nil
}

// LoadFile читает таблицы из файла.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default возвращает встроенный реестр. Создается один раз на процесс.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(bytes.NewReader(defaultTables))
		if err != nil {
			panic(fmt.Sprintf("embedded registry is broken: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// UnitType возвращает тип юнита по ключу.
func (r *Registry) UnitType(id domain.UnitTypeID) (UnitType, bool) {
	t, ok := r.units[id]
	return t, ok
}

// MustUnitType - как UnitType, но неизвестный ключ считается дефектом движка.
func (r *Registry) MustUnitType(id domain.UnitTypeID) UnitType {
	t, ok := r.units[id]
	if !ok {
		panic(fmt.Sprintf("registry: unknown unit type %q", id))
	}
	return t
}

// Weapon возвращает тип оружия по ключу.
func (r *Registry) Weapon(id domain.WeaponTypeID) (WeaponType, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// WeaponOf возвращает оружие, которым вооружен тип юнита.
func (r *Registry) WeaponOf(id domain.UnitTypeID) WeaponType {
	return r.weapons[r.MustUnitType(id).Weapon]
}

// DefaultUnitType - тип, который получает юнит, созданный командой CreateUnit.
func (r *Registry) DefaultUnitType() domain.UnitTypeID {
	return r.defaultUnit
}

// UnitTypes возвращает ключи всех типов юнитов в алфавитном порядке.
func (r *Registry) UnitTypes() []domain.UnitTypeID {
	ids := make([]domain.UnitTypeID, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
