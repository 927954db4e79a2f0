package engine

import (
	"testing"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_AllAI(t *testing.T) {
	sc, err := scenario.Parse([]byte(clash))
	require.NoError(t, err)
	g, err := NewGame(Config{Seed: 11}, registry.Default(), sc)
	require.NoError(t, err)
	playAll(g, 4)

	replayed, err := Replay(Config{}, registry.Default(), g.Session())
	require.NoError(t, err)

	assert.Equal(t, g.MatchID, replayed.MatchID)
	assert.Equal(t, g.Units(), replayed.Units())
	assert.Equal(t, g.Turn(), replayed.Turn())
}

func TestReplay_HumanAndAI(t *testing.T) {
	g, err := NewGame(Config{Seed: 5}, registry.Default(), scenario.Default())
	require.NoError(t, err)

	require.NotNil(t, g.Submit(domain.CreateUnitCommand{Pos: pos(1, 0)}))
	require.NotNil(t, g.Submit(domain.MoveCommand{UnitID: 1, Path: row(2, 0, 2)}))
	require.NotNil(t, g.Submit(domain.EndTurnCommand{}))
	require.NotNil(t, g.Submit(domain.EndTurnCommand{}))

	replayed, err := Replay(Config{}, registry.Default(), g.Session())
	require.NoError(t, err)

	assert.Equal(t, g.Units(), replayed.Units())
	assert.Equal(t, g.Session().Actions, replayed.Session().Actions)
	assert.Equal(t, domain.PlayerID(0), replayed.CurrentPlayer())
}

func TestReplay_Diverged(t *testing.T) {
	g, err := NewGame(Config{Seed: 5}, registry.Default(), scenario.Default())
	require.NoError(t, err)
	require.NotNil(t, g.Submit(domain.CreateUnitCommand{Pos: pos(1, 0)}))

	session := *g.Session()
	session.Actions = append([]domain.ReplayAction(nil), session.Actions...)
	// Клетка (0,1) занята танком: команда будет отклонена
	session.Actions[0].Payload = []byte(`{"x":0,"y":1}`)

	_, err = Replay(Config{}, registry.Default(), &session)
	assert.ErrorIs(t, err, ErrReplayDiverged)
}

func TestReplay_BrokenScenario(t *testing.T) {
	_, err := Replay(Config{}, registry.Default(), &domain.ReplaySession{Scenario: []byte("width: [")})
	assert.Error(t, err)
}
