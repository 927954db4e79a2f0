package engine

import (
	"github.com/gitter-badger/zoc/internal/domain"
)

// spawnScenario расставляет юниты сценария. Каждый юнит появляется через
// обычное событие CreateUnit, поэтому наблюдатели видят расстановку так же,
// как любое другое событие. В журнал команд расстановка не попадает: она
// восстанавливается из сценария.
func (g *Game) spawnScenario() {
	for _, spec := range g.scenario.Units {
		g.apply(domain.CreateUnitEvent{
			UnitID:   g.allocUnitID(),
			Pos:      spec.Pos,
			TypeID:   spec.Type,
			PlayerID: spec.Owner,
		})
	}
	g.log.WithField("units", len(g.scenario.Units)).Debug("Scenario spawned")
}
