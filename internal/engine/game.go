// Package engine - ядро партии: принимает команды, превращает их в события,
// применяет к "истине" и раздает каждому игроку его отфильтрованный поток.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gitter-badger/zoc/internal/agent"
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/fow"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/scenario"
	"github.com/gitter-badger/zoc/internal/state"
	"github.com/gitter-badger/zoc/internal/systems"
	"github.com/gitter-badger/zoc/pkg/api"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Game - одна партия.
type Game struct {
	MatchID uuid.UUID
	Logs    []api.LogEntry

	cfg      Config
	registry *registry.Registry
	scenario *scenario.Scenario
	state    *state.State
	turns    *TurnManager

	observers map[domain.PlayerID]*fow.Observer
	agents    map[domain.PlayerID]*agent.Agent

	rng        systems.Rand
	nextUnitID domain.UnitID
	turn       int
	logSeq     int

	session *domain.ReplaySession
	log     *logrus.Entry
}

// Option настраивает партию при создании.
type Option func(g *Game)

// WithRand подменяет генератор случайных чисел (для тестов).
func WithRand(rng systems.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// NewGame создает партию по сценарию и расставляет стартовые юниты.
func NewGame(cfg Config, reg *registry.Registry, sc *scenario.Scenario, opts ...Option) (*Game, error) {
	if err := sc.Validate(reg); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if cfg.MaxAICommandsPerTurn <= 0 {
		cfg.MaxAICommandsPerTurn = DefaultMaxAICommandsPerTurn
	}

	terrain := sc.Terrain()
	g := &Game{
		MatchID:   uuid.New(),
		Logs:      []api.LogEntry{},
		cfg:       cfg,
		registry:  reg,
		scenario:  sc,
		state:     state.New(terrain, reg),
		turns:     NewTurnManager(sc.Players),
		observers: make(map[domain.PlayerID]*fow.Observer, len(sc.Players)),
		agents:    make(map[domain.PlayerID]*agent.Agent),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}

	for _, p := range sc.Players {
		g.observers[p.ID] = fow.NewObserver(p.ID, terrain, reg)
		if !p.IsAI {
			continue
		}
		a, err := agent.New(p.ID, terrain, reg)
		if err != nil {
			return nil, fmt.Errorf("create agent for player %s: %w", p.ID, err)
		}
		g.agents[p.ID] = a
	}

	for _, opt := range opts {
		opt(g)
	}

	g.session = &domain.ReplaySession{
		MatchID:   g.MatchID,
		Seed:      cfg.Seed,
		Timestamp: time.Now().Unix(),
		Scenario:  sc.Raw(),
		Actions:   []domain.ReplayAction{},
	}
	g.log = logger.Component("event_engine").WithField("match", g.MatchID)

	g.spawnScenario()
	g.AddLog(fmt.Sprintf("Партия %q началась. Ходит игрок %s.", sc.Name, g.turns.Current()), "INFO")

	g.log.WithFields(logrus.Fields{
		"seed":    cfg.Seed,
		"players": g.turns.Len(),
		"units":   g.state.Len(),
	}).Info("Match created")

	return g, nil
}

// Submit принимает команду человека. Возвращает события "истины", которые
// она породила (nil, если команда отклонена). Если команда закончила ход и
// следующим ходит ИИ, ИИ играет сразу же.
func (g *Game) Submit(cmd domain.Command) []domain.Event {
	events := g.execute(cmd, false)
	if len(events) > 0 && cmd.Type() == domain.CommandEndTurn {
		g.RunAI()
	}
	return events
}

// Check проверяет команду, не исполняя ее.
func (g *Game) Check(cmd domain.Command) error {
	_, err := cmd.Accept(validator{g})
	return err
}

// execute проверяет и исполняет команду. Отклоненная команда не оставляет
// следов ни в состоянии, ни в журнале.
func (g *Game) execute(cmd domain.Command, byAI bool) []domain.Event {
	player := g.turns.Current()
	cmdLog := g.log.WithFields(logrus.Fields{
		"player":  player,
		"command": cmd.Type(),
		"ai":      byAI,
	})

	events, err := cmd.Accept(interpreter{g})
	if err != nil {
		cmdLog.WithError(err).Warn("Command rejected")
		return nil
	}

	g.record(cmd, player, byAI)
	for _, e := range events {
		g.apply(e)
	}

	cmdLog.WithField("events", len(events)).Debug("Command executed")
	return events
}

func (g *Game) record(cmd domain.Command, player domain.PlayerID, byAI bool) {
	env, err := api.EncodeCommand(cmd)
	if err != nil {
		// Все команды, прошедшие проверку, кодируются
		g.log.WithError(err).Error("Failed to journal command")
		return
	}
	g.session.Actions = append(g.session.Actions, domain.ReplayAction{
		Turn:    g.turn,
		Player:  player,
		Command: cmd.Type(),
		AI:      byAI,
		Payload: env.Payload,
	})
}

// apply применяет событие к "истине" и раздает его наблюдателям.
func (g *Game) apply(e domain.Event) {
	g.state.Apply(e)

	switch ev := e.(type) {
	case domain.EndTurnEvent:
		g.turns.SetCurrent(ev.NewID)
		g.turn++
		g.AddLog(fmt.Sprintf("Ход %d. Ходит игрок %s.", g.turn, ev.NewID), "INFO")
	case domain.AttackUnitEvent:
		g.logAttack(ev)
	}

	// ИИ получает свою копию отфильтрованных событий: очередь наблюдателя
	// остается внешним потребителям (PollEvents).
	for _, p := range g.turns.Players() {
		out := g.observers[p.ID].Observe(e)
		if a, ok := g.agents[p.ID]; ok && len(out) > 0 {
			a.Observe(out)
		}
	}
}

func (g *Game) logAttack(e domain.AttackUnitEvent) {
	text := fmt.Sprintf("Юнит %s попал под огонь", e.DefenderID)
	if id, ok := e.Attacker(); ok {
		text = fmt.Sprintf("Юнит %s атакует юнит %s", id, e.DefenderID)
	}
	if e.Mode == domain.FireReactive {
		text += " (ответный огонь)"
	}
	switch {
	case e.Killed == 0:
		text += ": промах."
	case !g.state.HasUnit(e.DefenderID):
		text += ": юнит уничтожен."
	default:
		text += fmt.Sprintf(": потери %d.", e.Killed)
	}
	g.AddLog(text, "COMBAT")
}

// Winner возвращает победителя, если юниты остались только у одного игрока.
func (g *Game) Winner() (domain.PlayerID, bool) {
	alive := g.state.PlayersWithUnits()
	if len(alive) != 1 {
		return 0, false
	}
	for id := range alive {
		return id, true
	}
	return 0, false
}

// Units возвращает копии всех юнитов "истины" по возрастанию ID.
func (g *Game) Units() []domain.Unit {
	return g.state.Units()
}

func (g *Game) Unit(id domain.UnitID) (domain.Unit, bool) {
	return g.state.Unit(id)
}

func (g *Game) CurrentPlayer() domain.PlayerID {
	return g.turns.Current()
}

func (g *Game) Players() []domain.Player {
	return g.turns.Players()
}

// Turn - сколько раз передавался ход.
func (g *Game) Turn() int {
	return g.turn
}

// Round - номер полного круга ходов.
func (g *Game) Round() int {
	return g.turn / g.turns.Len()
}

func (g *Game) Terrain() *domain.TerrainMap {
	return g.state.Terrain()
}

// Visibility возвращает видимость клетки для игрока.
func (g *Game) Visibility(player domain.PlayerID, pos domain.Position) fow.TileVisibility {
	obs, ok := g.observers[player]
	if !ok {
		return fow.VisibilityNone
	}
	return obs.Visibility(pos)
}

// PollEvents забирает накопленные события игрока. Каждое событие отдается
// ровно один раз. На ИИ это не влияет: он получает события напрямую.
func (g *Game) PollEvents(player domain.PlayerID) []domain.Event {
	obs, ok := g.observers[player]
	if !ok {
		return nil
	}
	return obs.Drain()
}

// Session возвращает журнал партии для записи.
func (g *Game) Session() *domain.ReplaySession {
	return g.session
}

func (g *Game) allocUnitID() domain.UnitID {
	id := g.nextUnitID
	g.nextUnitID++
	return id
}
