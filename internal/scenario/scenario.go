// Package scenario описывает стартовую расстановку партии: карту, игроков
// и юниты. Сценарий хранится в YAML и целиком попадает в запись партии.
package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/pkg/logger"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScenario []byte

// UnitSpec - один юнит стартовой расстановки.
type UnitSpec struct {
	Owner domain.PlayerID   `yaml:"owner"`
	Type  domain.UnitTypeID `yaml:"type"`
	Pos   domain.Position   `yaml:"pos"`
}

// Scenario - стартовая расстановка. Игроки ходят в порядке списка Players,
// их ID совпадают с позицией в списке.
type Scenario struct {
	Name    string            `yaml:"name"`
	Width   int               `yaml:"width"`
	Height  int               `yaml:"height"`
	Trees   []domain.Position `yaml:"trees"`
	Players []domain.Player   `yaml:"players"`
	Units   []UnitSpec        `yaml:"units"`

	raw []byte
}

// Parse разбирает YAML сценария и проверяет его структуру.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := sc.checkLayout(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	sc.raw = append([]byte(nil), data...)

	logger.Log.WithField("component", "scenario").
		WithField("name", sc.Name).
		WithField("players", len(sc.Players)).
		WithField("units", len(sc.Units)).
		Debug("Scenario parsed")

	return &sc, nil
}

// Load читает сценарий из файла.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Default возвращает встроенный сценарий.
func Default() *Scenario {
	sc, err := Parse(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("embedded scenario is broken: %v", err))
	}
	return sc
}

func (sc *Scenario) checkLayout() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("map size %dx%d is invalid", sc.Width, sc.Height)
	}
	if len(sc.Players) < 2 {
		return fmt.Errorf("need at least two players, got %d", len(sc.Players))
	}
	for i, p := range sc.Players {
		if p.ID != domain.PlayerID(i) {
			return fmt.Errorf("player #%d has id %d, ids must follow turn order", i, p.ID)
		}
	}
	m := domain.NewTerrainMap(sc.Width, sc.Height)
	for _, pos := range sc.Trees {
		if !m.InBounds(pos) {
			return fmt.Errorf("tree at (%d,%d) is out of bounds", pos.X, pos.Y)
		}
	}
	return nil
}

// Validate проверяет расстановку по реестру: типы юнитов существуют,
// юниты стоят на карте, по одному на клетку, у известных игроков.
func (sc *Scenario) Validate(reg *registry.Registry) error {
	m := sc.Terrain()
	taken := make(map[domain.Position]bool, len(sc.Units))
	for i, u := range sc.Units {
		if _, ok := reg.UnitType(u.Type); !ok {
			return fmt.Errorf("unit #%d: unknown type %q", i, u.Type)
		}
		if int(u.Owner) < 0 || int(u.Owner) >= len(sc.Players) {
			return fmt.Errorf("unit #%d: unknown owner %s", i, u.Owner)
		}
		if !m.InBounds(u.Pos) {
			return fmt.Errorf("unit #%d: position (%d,%d) is out of bounds", i, u.Pos.X, u.Pos.Y)
		}
		if taken[u.Pos] {
			return fmt.Errorf("unit #%d: tile (%d,%d) is already taken", i, u.Pos.X, u.Pos.Y)
		}
		taken[u.Pos] = true
	}
	return nil
}

// Terrain строит карту местности сценария.
func (sc *Scenario) Terrain() *domain.TerrainMap {
	m := domain.NewTerrainMap(sc.Width, sc.Height)
	for _, pos := range sc.Trees {
		m.Set(pos, domain.TerrainTrees)
	}
	return m
}

// Raw возвращает YAML, из которого построен сценарий.
func (sc *Scenario) Raw() []byte {
	return sc.raw
}

// WithAllAI возвращает копию сценария, где за всех игроков играет ИИ.
// YAML копии пересобирается, чтобы запись партии воспроизводила именно ее.
func (sc *Scenario) WithAllAI() (*Scenario, error) {
	cp := *sc
	cp.Players = make([]domain.Player, len(sc.Players))
	for i, p := range sc.Players {
		p.IsAI = true
		cp.Players[i] = p
	}

	raw, err := yaml.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario: %w", err)
	}
	cp.raw = raw
	return &cp, nil
}
