package scenario

import (
	"fmt"
	"math/rand"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Параметры генерации по умолчанию
const (
	DefaultWidth  = 12
	DefaultHeight = 10

	minGroveSize = 1
	maxGroveSize = 3

	// deployDepth - ширина полосы расстановки у края карты
	deployDepth = 2
)

// Rect - вспомогательная структура для рощи
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Builder предоставляет fluent API для генерации случайного поля боя.
// Все решения принимаются через rng: одно зерно дает один и тот же сценарий.
type Builder struct {
	name    string
	width   int
	height  int
	groves  []Rect
	trees   []domain.Position
	wooded  map[domain.Position]bool
	players []domain.Player
	units   []UnitSpec
	taken   map[domain.Position]bool
	rng     *rand.Rand
	err     error
}

// NewBuilder создает builder для сценария name
func NewBuilder(name string, rng *rand.Rand) *Builder {
	return &Builder{
		name:   name,
		width:  DefaultWidth,
		height: DefaultHeight,
		wooded: make(map[domain.Position]bool),
		taken:  make(map[domain.Position]bool),
		rng:    rng,
	}
}

func (b *Builder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// WithSize устанавливает размер карты. Вызывать до WithGroves и Deploy.
func (b *Builder) WithSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// WithPlayers задает ростер. ID игроков должны совпадать с их позицией.
func (b *Builder) WithPlayers(players ...domain.Player) *Builder {
	b.players = append(b.players, players...)
	return b
}

// WithGroves сажает до maxGroves непересекающихся рощ между полосами расстановки
func (b *Builder) WithGroves(maxGroves int) *Builder {
	for i := 0; i < maxGroves; i++ {
		w := b.randRange(minGroveSize, maxGroveSize)
		h := b.randRange(minGroveSize, maxGroveSize)
		maxX := b.width - deployDepth - w
		maxY := b.height - h
		if maxX < deployDepth || maxY < 0 {
			continue
		}
		grove := Rect{X: b.randRange(deployDepth, maxX), Y: b.randRange(0, maxY), W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.groves {
			if grove.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		for y := grove.Y; y < grove.Y+grove.H; y++ {
			for x := grove.X; x < grove.X+grove.W; x++ {
				// Роща не сплошная: примерно треть клеток остается поляной
				if b.rng.Intn(3) == 0 {
					continue
				}
				pos := domain.Position{X: x, Y: y}
				b.trees = append(b.trees, pos)
				b.wooded[pos] = true
			}
		}
		b.groves = append(b.groves, grove)
	}
	return b
}

// Deploy ставит юниты игрока owner в его полосу у края карты
func (b *Builder) Deploy(owner domain.PlayerID, types ...domain.UnitTypeID) *Builder {
	if b.err != nil {
		return b
	}
	if int(owner) < 0 || int(owner) >= len(b.players) {
		b.err = fmt.Errorf("deploy: unknown player %s", owner)
		return b
	}

	band := b.bandStart(owner)
	startRow := b.rng.Intn(b.height)
	for _, t := range types {
		pos, ok := b.freeTile(band, startRow)
		if !ok {
			b.err = fmt.Errorf("deploy: no room left for player %s", owner)
			return b
		}
		b.taken[pos] = true
		b.units = append(b.units, UnitSpec{Owner: owner, Type: t, Pos: pos})
	}
	return b
}

// bandStart - первая колонка полосы игрока. Первый игрок у левого края,
// последний у правого, остальные между ними.
func (b *Builder) bandStart(owner domain.PlayerID) int {
	if len(b.players) < 2 {
		return 0
	}
	return int(owner) * (b.width - deployDepth) / (len(b.players) - 1)
}

func (b *Builder) freeTile(band, startRow int) (domain.Position, bool) {
	for i := 0; i < b.height; i++ {
		y := (startRow + i) % b.height
		for x := band; x < band+deployDepth && x < b.width; x++ {
			pos := domain.Position{X: x, Y: y}
			if !b.taken[pos] && !b.wooded[pos] {
				return pos, true
			}
		}
	}
	return domain.Position{}, false
}

// Build собирает сценарий. YAML собирается заново, чтобы запись партии
// воспроизводила именно это поле.
func (b *Builder) Build() (*Scenario, error) {
	if b.err != nil {
		return nil, b.err
	}
	sc := &Scenario{
		Name:    b.name,
		Width:   b.width,
		Height:  b.height,
		Trees:   b.trees,
		Players: b.players,
		Units:   b.units,
	}
	if err := sc.checkLayout(); err != nil {
		return nil, fmt.Errorf("generated scenario: %w", err)
	}

	raw, err := yaml.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario: %w", err)
	}
	sc.raw = raw

	logger.Log.WithField("component", "scenario").
		WithField("name", sc.Name).
		WithField("groves", len(b.groves)).
		WithField("trees", len(b.trees)).
		WithField("units", len(b.units)).
		Debug("Scenario generated")

	return sc, nil
}
