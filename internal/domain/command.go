package domain

// Command - намерение игрока (человека или ИИ). Набор вариантов закрыт,
// обработка идет через CommandHandler.
type Command interface {
	Type() CommandType
	Accept(h CommandHandler) ([]Event, error)
	sealedCommand()
}

// CommandHandler - исчерпывающий обработчик всех вариантов Command.
// Пустой список событий без ошибки недопустим: отказ всегда выражается ошибкой.
type CommandHandler interface {
	HandleEndTurn(c EndTurnCommand) ([]Event, error)
	HandleCreateUnit(c CreateUnitCommand) ([]Event, error)
	HandleMove(c MoveCommand) ([]Event, error)
	HandleAttackUnit(c AttackUnitCommand) ([]Event, error)
}

// EndTurnCommand - передать ход следующему игроку.
type EndTurnCommand struct{}

// CreateUnitCommand - поставить юнит типа по умолчанию (для сборки сценариев).
type CreateUnitCommand struct {
	Pos Position
}

// MoveCommand - провести юнит по пути.
type MoveCommand struct {
	UnitID UnitID
	Path   Path
	Mode   MoveMode
}

// AttackUnitCommand - атаковать чужой юнит.
type AttackUnitCommand struct {
	AttackerID UnitID
	DefenderID UnitID
}

func (EndTurnCommand) Type() CommandType    { return CommandEndTurn }
func (CreateUnitCommand) Type() CommandType { return CommandCreateUnit }
func (MoveCommand) Type() CommandType       { return CommandMove }
func (AttackUnitCommand) Type() CommandType { return CommandAttackUnit }

func (c EndTurnCommand) Accept(h CommandHandler) ([]Event, error)    { return h.HandleEndTurn(c) }
func (c CreateUnitCommand) Accept(h CommandHandler) ([]Event, error) { return h.HandleCreateUnit(c) }
func (c MoveCommand) Accept(h CommandHandler) ([]Event, error)       { return h.HandleMove(c) }
func (c AttackUnitCommand) Accept(h CommandHandler) ([]Event, error) { return h.HandleAttackUnit(c) }

func (EndTurnCommand) sealedCommand()    {}
func (CreateUnitCommand) sealedCommand() {}
func (MoveCommand) sealedCommand()       {}
func (AttackUnitCommand) sealedCommand() {}
