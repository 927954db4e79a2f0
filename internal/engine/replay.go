package engine

import (
	"bytes"
	"fmt"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/scenario"
	"github.com/gitter-badger/zoc/pkg/api"
	"github.com/sirupsen/logrus"
)

// Replay заново проигрывает записанную партию. Подаются только команды людей:
// ходы ИИ восстанавливаются сами, потому что зерно, сценарий и входы те же.
// Если пересобранный журнал не совпал с записанным, возвращается ErrReplayDiverged.
func Replay(cfg Config, reg *registry.Registry, session *domain.ReplaySession, opts ...Option) (*Game, error) {
	sc, err := scenario.Parse(session.Scenario)
	if err != nil {
		return nil, fmt.Errorf("replay scenario: %w", err)
	}

	cfg.Seed = session.Seed
	g, err := NewGame(cfg, reg, sc, opts...)
	if err != nil {
		return nil, err
	}
	g.MatchID = session.MatchID
	g.session.MatchID = session.MatchID
	g.log = g.log.WithField("match", session.MatchID)

	recorded := session.Actions
	for i, action := range recorded {
		if action.AI {
			continue
		}
		g.catchUpAI(len(recorded))

		cmd, err := api.DecodeCommand(api.CommandEnvelope{
			Type:    action.Command.String(),
			Payload: action.Payload,
		})
		if err != nil {
			return nil, fmt.Errorf("replay action #%d: %w", i, err)
		}
		if g.Submit(cmd) == nil {
			return nil, fmt.Errorf("%w: action #%d (%s) was rejected", ErrReplayDiverged, i, action.Command)
		}
	}
	g.catchUpAI(len(recorded))

	if err := compareJournals(recorded, g.session.Actions); err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"actions": len(recorded),
		"turn":    g.turn,
	}).Info("Replay finished")
	return g, nil
}

// catchUpAI дает ходить ИИ, пока журнал не дорастет до записанной длины.
func (g *Game) catchUpAI(target int) {
	for len(g.session.Actions) < target {
		if _, over := g.Winner(); over {
			return
		}
		if !g.turns.IsAI(g.turns.Current()) {
			return
		}
		if g.RunAI() == 0 {
			return
		}
	}
}

func compareJournals(recorded, replayed []domain.ReplayAction) error {
	if len(recorded) != len(replayed) {
		return fmt.Errorf("%w: %d actions recorded, %d replayed", ErrReplayDiverged, len(recorded), len(replayed))
	}
	for i := range recorded {
		want, got := recorded[i], replayed[i]
		if want.Turn != got.Turn || want.Player != got.Player || want.Command != got.Command ||
			want.AI != got.AI || !bytes.Equal(want.Payload, got.Payload) {
			return fmt.Errorf("%w: action #%d: recorded %s by %s, replayed %s by %s",
				ErrReplayDiverged, i, want.Command, want.Player, got.Command, got.Player)
		}
	}
	return nil
}
