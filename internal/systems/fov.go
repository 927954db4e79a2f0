package systems

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// VisitFunc получает видимую клетку и расстояние до нее от наблюдателя.
type VisitFunc func(pos domain.Position, distance int)

// ComputeFOV обходит все клетки карты в радиусе radius от origin, которые
// видны с origin (см. HasLineOfSight). Клетка наблюдателя посещается всегда.
// Порядок обхода - построчный, он детерминирован.
func ComputeFOV(m *domain.TerrainMap, origin domain.Position, radius int, visit VisitFunc) {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
		"radius":       radius,
	})

	if !m.InBounds(origin) {
		fovLogger.Warn("FOV calculation skipped: observer is out of bounds.")
		return
	}

	visit(origin, 0)
	if radius <= 0 {
		return
	}

	visible := 1
	minY, maxY := clamp(origin.Y-radius, 0, m.Height-1), clamp(origin.Y+radius, 0, m.Height-1)
	minX, maxX := clamp(origin.X-radius-1, 0, m.Width-1), clamp(origin.X+radius+1, 0, m.Width-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			pos := domain.Position{X: x, Y: y}
			if pos == origin {
				continue
			}
			dist := origin.DistanceTo(pos)
			if dist > radius {
				continue
			}
			if !HasLineOfSight(m, origin, pos) {
				continue
			}
			visit(pos, dist)
			visible++
		}
	}

	fovLogger.WithField("visible_tiles", visible).Debug("FOV calculation complete.")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
