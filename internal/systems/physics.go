package systems

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между центрами двух клеток.
// Препятствием считается только местность на промежуточных клетках:
// сами концы (стрелок и цель) обзор не закрывают. Дальность обзора здесь не учитывается.
func HasLineOfSight(m *domain.TerrainMap, from, to domain.Position) bool {
	if from == to {
		return true
	}

	line := domain.Line(from, to)
	for _, p := range line[1 : len(line)-1] {
		// 1. Проверка границ карты
		if !m.InBounds(p) {
			return false
		}
		// 2. Проверка местности
		if m.At(p).BlocksSight() {
			logger.Log.WithFields(logrus.Fields{
				"component":      "physics_system",
				"start_pos":      from,
				"end_pos":        to,
				"blocking_point": p,
			}).Debug("Line of sight blocked by terrain")
			return false
		}
	}
	return true
}
