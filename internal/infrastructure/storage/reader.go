package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gitter-badger/zoc/internal/domain"
)

var (
	ErrInvalidMagic       = errors.New("not a replay file")
	ErrUnsupportedVersion = errors.New("unsupported replay version")
	ErrCorrupted          = errors.New("corrupted replay file")
)

// actionsPrealloc - сколько записей резервируется заранее, сколько бы ни
// обещал заголовок. Дальше слайс растет по мере чтения.
const actionsPrealloc = 256

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	session, err := readBinary(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", path, err)
	}
	if s.log != nil {
		s.log.WithField("actions", len(session.Actions)).Debug("Replay loaded")
	}
	return session, nil
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("%w: negative action count %d", ErrCorrupted, header.ActionCount)
	}
	if header.ScenarioLen > MaxScenarioLen {
		return nil, fmt.Errorf("%w: scenario length %d (max %d)", ErrCorrupted, header.ScenarioLen, MaxScenarioLen)
	}

	session := &domain.ReplaySession{
		MatchID:   header.MatchID,
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, min(int(header.ActionCount), actionsPrealloc)),
	}

	// 2. Читаем сценарий
	if header.ScenarioLen > 0 {
		session.Scenario = make([]byte, header.ScenarioLen)
		if _, err := io.ReadFull(r, session.Scenario); err != nil {
			return nil, fmt.Errorf("failed to read scenario: %w", err)
		}
	}

	// 3. Читаем команды
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action #%d: %w", i, err)
		}

		act := domain.ReplayAction{
			Turn:    int(ah.Turn),
			Player:  domain.PlayerID(ah.Player),
			Command: domain.CommandType(ah.Command),
			AI:      ah.Flags&flagAI != 0,
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action #%d payload: %w", i, err)
			}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
