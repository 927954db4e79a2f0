package domain

import "strconv"

// UnitID - идентификатор юнита. Выдается движком последовательно, начиная с 0,
// и никогда не переиспользуется в рамках одной партии.
type UnitID int32

// PlayerID - идентификатор игрока (место за столом).
type PlayerID int32

// UnitTypeID - ключ типа юнита в статическом реестре ("tank", "soldier", ...).
type UnitTypeID string

// WeaponTypeID - ключ типа оружия в статическом реестре.
type WeaponTypeID string

func (id UnitID) String() string {
	return "unit#" + strconv.Itoa(int(id))
}

func (id PlayerID) String() string {
	return "player#" + strconv.Itoa(int(id))
}

// UnitRef возвращает указатель на копию id. Используется для необязательных
// ссылок (например, атакующий в событии засады отсутствует).
func UnitRef(id UnitID) *UnitID {
	return &id
}
