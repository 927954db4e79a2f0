package domain

import "strings"

// UnitClass - класс юнита. Определяет, как его видно в тумане войны
// и как считаются потери.
type UnitClass uint8

const (
	ClassInfantry UnitClass = iota
	ClassVehicle
)

var classStringToType = map[string]UnitClass{
	"INFANTRY": ClassInfantry,
	"VEHICLE":  ClassVehicle,
}

var classTypeToString = map[UnitClass]string{
	ClassInfantry: "INFANTRY",
	ClassVehicle:  "VEHICLE",
}

func ParseUnitClass(s string) (UnitClass, bool) {
	val, ok := classStringToType[strings.ToUpper(s)]
	return val, ok
}

func (c UnitClass) String() string {
	if val, ok := classTypeToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Unit - состояние одного отряда на карте.
type Unit struct {
	ID       UnitID
	Pos      Position
	PlayerID PlayerID
	TypeID   UnitTypeID

	// Count - сколько бойцов (машин) осталось в отряде. Юнит с Count <= 0 удаляется.
	Count        int
	MovePoints   int
	AttackPoints int

	// ReactiveAttackPoints есть только у юнитов с полной информацией.
	// У "призраков" (чужих юнитов, видимых наблюдателю) здесь nil.
	ReactiveAttackPoints *int

	Morale int
}

// IsGhost - юнит известен наблюдателю только частично.
func (u Unit) IsGhost() bool {
	return u.ReactiveAttackPoints == nil
}

// Reactive возвращает реактивные очки атаки (0 для призрака).
func (u Unit) Reactive() int {
	if u.ReactiveAttackPoints == nil {
		return 0
	}
	return *u.ReactiveAttackPoints
}

// Clone возвращает копию, не разделяющую указатель на реактивные очки.
func (u Unit) Clone() Unit {
	if u.ReactiveAttackPoints != nil {
		rap := *u.ReactiveAttackPoints
		u.ReactiveAttackPoints = &rap
	}
	return u
}

// Player - место за столом.
type Player struct {
	ID   PlayerID `json:"id" yaml:"id"`
	IsAI bool     `json:"isAi" yaml:"ai"`
}
