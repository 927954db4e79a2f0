package systems

import (
	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/internal/registry"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Rand - источник случайных чисел. *math/rand.Rand подходит напрямую;
// в тестах подставляется заранее записанная последовательность.
type Rand interface {
	// Intn возвращает число из [0, n).
	Intn(n int) int
}

// Границы бросков.
const (
	gateDrawMin = -5
	gateDrawMax = 5 // не включительно

	casualtyDrawMin = 1
	casualtyDrawMax = 5 // не включительно

	ambushDrawMin   = 1
	ambushDrawMax   = 10 // не включительно
	ambushThreshold = 3

	baseSuppression        = 10
	suppressionPerCasualty = 20
)

// rangeDraw возвращает случайное число из [lo, hi).
func rangeDraw(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

// gate - одна проверка: бросок строго меньше порога.
// Порог <= -5 не проходит никогда, порог >= 5 проходит всегда.
func gate(rng Rand, threshold int) bool {
	return rangeDraw(rng, gateDrawMin, gateDrawMax) < threshold
}

// HitThreshold - порог попадания.
func HitThreshold(attacker, defender registry.UnitType, weapon registry.WeaponType) int {
	return -15 + defender.Size + weapon.Accuracy + attacker.WeaponSkill
}

// PierceThreshold - порог пробития брони.
func PierceThreshold(defender registry.UnitType, weapon registry.WeaponType) int {
	return 5 - defender.Armor + weapon.ArmorPiercing
}

// WoundThreshold - порог поражения.
func WoundThreshold(defender registry.UnitType, weapon registry.WeaponType) int {
	return -defender.Toughness + weapon.Damage
}

// HitTest - три последовательные проверки: попадание, пробитие, поражение.
// Провал любой прерывает цепочку, следующие броски не делаются.
func HitTest(rng Rand, attacker, defender registry.UnitType, weapon registry.WeaponType) bool {
	if !gate(rng, HitThreshold(attacker, defender, weapon)) {
		return false
	}
	if !gate(rng, PierceThreshold(defender, weapon)) {
		return false
	}
	return gate(rng, WoundThreshold(defender, weapon))
}

// CasualtyCount - сколько моделей теряет отряд после подтвержденного попадания.
// Техника всегда теряет одну, пехота - случайное число в пределах [1, count].
func CasualtyCount(rng Rand, defender registry.UnitType, count int) int {
	if defender.Class == domain.ClassVehicle {
		return 1
	}
	killed := rangeDraw(rng, casualtyDrawMin, casualtyDrawMax)
	if killed > count {
		killed = count
	}
	if killed < 1 {
		killed = 1
	}
	return killed
}

// Suppression - урон морали от атаки. Даже атака без потерь подавляет.
func Suppression(killed int) int {
	return baseSuppression + suppressionPerCasualty*killed
}

// AmbushRoll - дополнительная проверка засады для невидимого стрелка.
func AmbushRoll(rng Rand) bool {
	return rangeDraw(rng, ambushDrawMin, ambushDrawMax) > ambushThreshold
}

// Engagement - все, что нужно для разрешения одной атаки.
type Engagement struct {
	Attacker domain.Unit
	Defender domain.Unit
	Mode     domain.FireMode

	// RemoveMovePoints - попадание под огонь обнуляет очки движения цели.
	RemoveMovePoints bool

	// AttackerHidden - стрелок не виден стороне защитника. Только тогда
	// возможна засада.
	AttackerHidden bool
}

// ResolveAttack разрешает атаку, прошедшую CheckFirePosition, и строит событие.
// Порядок бросков фиксирован: попадание, пробитие, поражение, потери, засада.
func ResolveAttack(rng Rand, reg *registry.Registry, en Engagement) domain.AttackUnitEvent {
	attackerType := reg.MustUnitType(en.Attacker.TypeID)
	defenderType := reg.MustUnitType(en.Defender.TypeID)
	weapon := reg.WeaponOf(en.Attacker.TypeID)

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": en.Attacker.ID,
		"defender_id": en.Defender.ID,
		"fire_mode":   en.Mode,
	})

	// 1. Попадание, пробитие, поражение
	killed := 0
	if HitTest(rng, attackerType, defenderType, weapon) {
		// 2. Потери
		killed = CasualtyCount(rng, defenderType, en.Defender.Count)
	}

	// 3. Засада: только если стрелка не видно
	ambush := en.AttackerHidden && AmbushRoll(rng)

	ev := domain.AttackUnitEvent{
		DefenderID:       en.Defender.ID,
		Mode:             en.Mode,
		Killed:           killed,
		Suppression:      Suppression(killed),
		RemoveMovePoints: en.RemoveMovePoints,
	}
	if !ambush {
		ev.AttackerID = domain.UnitRef(en.Attacker.ID)
	}

	combatLogger.WithFields(logrus.Fields{
		"killed":      killed,
		"suppression": ev.Suppression,
		"ambush":      ambush,
		"count_after": en.Defender.Count - killed,
	}).Info("Attack resolved.")

	return ev
}
