// Package storage хранит записи партий в компактном бинарном формате.
package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gitter-badger/zoc/internal/domain"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `ZOCR` // 4 байта
	Version1    uint32 = 1

	FileExt = ".zocr"

	// MaxScenarioLen - предел размера сценария в файле.
	MaxScenarioLen = 1 << 20
)

// Флаги записи команды
const (
	flagAI uint8 = 1 << iota
)

// ReplayFileHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte  // 4 байта
	Version     uint32   // 4 байта
	MatchID     [16]byte // 16 байт
	Seed        int64    // 8 байт
	Timestamp   int64    // 8 байт
	ActionCount int32    // 4 байта
	ScenarioLen uint32   // 4 байта, следом идет YAML сценария
}

// ActionHeader — заголовок каждой записи команды.
type ActionHeader struct {
	Turn       int32  // 4
	Player     int32  // 4
	Command    uint8  // 1
	Flags      uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
	log     *logrus.Entry
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{
		SaveDir: dir,
		log:     logger.Component("replay_storage").WithField("dir", dir),
	}, nil
}

// Save пишет запись партии в новый файл и возвращает путь к нему.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d%s", session.MatchID, session.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"file":    filename,
		"actions": len(session.Actions),
	}).Info("Replay saved")
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	if len(s.Scenario) > MaxScenarioLen {
		return fmt.Errorf("scenario too long: %d (max %d)", len(s.Scenario), MaxScenarioLen)
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:     Version1,
		MatchID:     s.MatchID,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		ActionCount: int32(len(s.Actions)),
		ScenarioLen: uint32(len(s.Scenario)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	// ПИШЕМ СТРУКТУРУ ЦЕЛИКОМ
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Сценарий
	if _, err := w.Write(s.Scenario); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}

	// 3. Пишем команды
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > math.MaxUint16 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		// Подготавливаем заголовок команды
		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			Player:     int32(act.Player),
			Command:    uint8(act.Command),
			PayloadLen: uint16(payloadLen),
		}
		if act.AI {
			actHeader.Flags |= flagAI
		}

		// Пишем заголовок команды одной командой
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем динамические данные (тело)
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
