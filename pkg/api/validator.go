package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position must not be negative")
	}
	return nil
}

func (p MovePayload) Validate() error {
	if len(p.Path) < 2 {
		return errors.New("path must contain at least two nodes")
	}
	if p.Path[0].Cost != 0 {
		return errors.New("path must start with zero cost")
	}
	for i := 1; i < len(p.Path); i++ {
		if p.Path[i].Cost < p.Path[i-1].Cost {
			return errors.New("path costs must not decrease")
		}
	}
	switch strings.ToUpper(p.Mode) {
	case "FAST", "HUNT":
		return nil
	default:
		return errors.New("mode must be FAST or HUNT")
	}
}

func (p AttackPayload) Validate() error {
	if p.AttackerID == p.DefenderID {
		return errors.New("unit cannot attack itself")
	}
	return nil
}
