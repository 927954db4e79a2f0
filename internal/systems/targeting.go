package systems

import (
	"errors"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
)

// MinFireMorale - ниже этого значения юнит не открывает огонь.
const MinFireMorale = 50

var (
	ErrOutOfRange    = errors.New("target is out of weapon range")
	ErrNoLineOfSight = errors.New("no line of sight to target")
	ErrLowMorale     = errors.New("attacker morale is too low")
)

// CheckFirePosition проверяет, может ли attacker стрелять по клетке target.
// Это проверка законности попытки, а не шанс попасть: при ошибке атака
// не порождает никакого события.
func CheckFirePosition(m *domain.TerrainMap, reg *registry.Registry, attacker domain.Unit, target domain.Position) error {
	// 1. Дистанция
	weapon := reg.WeaponOf(attacker.TypeID)
	if attacker.Pos.DistanceTo(target) > weapon.MaxDistance {
		return ErrOutOfRange
	}

	// 2. Прямая видимость
	if !HasLineOfSight(m, attacker.Pos, target) {
		return ErrNoLineOfSight
	}

	// 3. Мораль
	if attacker.Morale < MinFireMorale {
		return ErrLowMorale
	}
	return nil
}
