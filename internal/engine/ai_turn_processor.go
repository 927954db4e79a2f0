package engine

import (
	"github.com/gitter-badger/zoc/internal/agent"
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/sirupsen/logrus"
)

// RunAI отыгрывает ходы ИИ, пока ход не вернется к человеку или партия не
// закончится. Возвращает число исполненных команд.
func (g *Game) RunAI() int {
	issued := 0
	for i := 0; i < g.turns.Len(); i++ {
		if _, over := g.Winner(); over {
			break
		}
		current := g.turns.Current()
		if !g.turns.IsAI(current) {
			break
		}
		issued += g.processAITurn(g.agents[current])
	}
	return issued
}

// processAITurn играет один ход ИИ до его EndTurn. ИИ знает о мире только то,
// что пришло ему через фильтр видимости.
func (g *Game) processAITurn(a *agent.Agent) int {
	aiLog := g.log.WithFields(logrus.Fields{
		"component": "ai_turn",
		"player":    a.Player(),
		"turn":      g.turn,
	})

	for n := 0; ; n++ {
		var cmd domain.Command
		if n >= g.cfg.MaxAICommandsPerTurn {
			aiLog.WithField("limit", g.cfg.MaxAICommandsPerTurn).Warn("AI command limit reached, ending turn")
			cmd = domain.EndTurnCommand{}
		} else {
			cmd = a.Decide()
		}

		if g.execute(cmd, true) == nil {
			// Отказ не должен повторяться бесконечно: ход заканчивается
			aiLog.WithField("command", cmd.Type()).Warn("AI command rejected, ending turn")
			g.execute(domain.EndTurnCommand{}, true)
			return n + 2
		}
		if cmd.Type() == domain.CommandEndTurn {
			aiLog.WithField("commands", n+1).Debug("AI turn finished")
			return n + 1
		}
	}
}
