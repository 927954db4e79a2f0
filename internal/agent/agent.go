// Package agent - ИИ-игрок. Агент знает о мире только то, что ему прислал
// его движок видимости: свое зеркало он строит из отфильтрованных событий
// тем же редьюсером, что и авторитетное состояние, и никогда не читает
// состояние движка.
package agent

import (
	"github.com/expr-lang/expr/vm"
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/state"
	"github.com/gitter-badger/zoc/internal/systems"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Agent принимает решения за одного игрока.
type Agent struct {
	player     domain.PlayerID
	registry   *registry.Registry
	mirror     *state.State
	pathfinder *systems.Pathfinder
	rules      []*Rule
	log        *logrus.Entry
}

// New создает агента с правилами по умолчанию.
func New(player domain.PlayerID, terrain *domain.TerrainMap, reg *registry.Registry) (*Agent, error) {
	return NewWithRules(player, terrain, reg, DefaultRules())
}

// NewWithRules создает агента с заданным набором правил. Условия
// компилируются сразу, ошибка в любом из них - ошибка создания.
func NewWithRules(player domain.PlayerID, terrain *domain.TerrainMap, reg *registry.Registry, rules []*Rule) (*Agent, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	mirror := state.NewMirror(terrain, reg, player)
	return &Agent{
		player:     player,
		registry:   reg,
		mirror:     mirror,
		pathfinder: systems.NewPathfinder(mirror.Terrain()),
		rules:      compiled,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ai_agent",
			"player":    player,
		}),
	}, nil
}

func (a *Agent) Player() domain.PlayerID {
	return a.player
}

// Observe применяет к зеркалу события, отфильтрованные движком видимости.
func (a *Agent) Observe(events []domain.Event) {
	for _, e := range events {
		a.mirror.Apply(e)
	}
}

// Decide выбирает следующую команду. Правила проверяются по приоритету,
// выигрывает первое сработавшее; если не сработало ничего, ход заканчивается.
func (a *Agent) Decide() domain.Command {
	env := a.env()

	for _, r := range a.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			a.log.WithError(err).WithField("rule", r.Name).Warn("Rule condition failed")
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}

		cmd := r.Action(env)
		if cmd == nil {
			continue
		}
		a.log.WithFields(logrus.Fields{
			"rule":    r.Name,
			"command": cmd.Type(),
		}).Debug("Rule fired")
		return cmd
	}
	return domain.EndTurnCommand{}
}

func (a *Agent) env() RuleEnv {
	p := &planner{a: a}
	for _, u := range a.mirror.Units() {
		if u.PlayerID == a.player {
			p.own = append(p.own, u)
		} else {
			p.enemies = append(p.enemies, u)
		}
	}
	return RuleEnv{
		Player:     int(a.player),
		OwnUnits:   len(p.own),
		EnemyUnits: len(p.enemies),
		plan:       p,
	}
}
