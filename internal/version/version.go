// Package version - данные сборки. Переменные Build* задаются при сборке:
//
//	go build -ldflags "-X github.com/gitter-badger/zoc/internal/version.BuildDate=2026-02-01 ..."
package version

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Name - имя программы в логах и выводе -version.
const Name = "zoc-skirmish"

// Заполняются через -ldflags -X.
var (
	BuildDate   string // YYYY-MM-DD, UTC
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// epoch - день сборки номер 0.
const epoch = "2026-01-15"

const dateLayout = "2006-01-02"

var (
	ErrNoBuildDate     = errors.New("build date not set")
	ErrBeforeEpoch     = errors.New("build date before epoch " + epoch)
	ErrInvalidBuildDay = errors.New("invalid build date")
)

// Build - метаданные одной сборки.
type Build struct {
	Date   string
	Commit string
	Branch string
	CI     string
}

// Current возвращает метаданные текущего бинарника.
func Current() Build {
	return Build{
		Date:   BuildDate,
		Commit: BuildCommit,
		Branch: BuildBranch,
		CI:     BuildCI,
	}
}

// Number - номер сборки: сколько суток прошло от epoch до даты сборки.
func (b Build) Number() (int, error) {
	if b.Date == "" {
		return 0, ErrNoBuildDate
	}
	day, err := time.Parse(dateLayout, b.Date)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidBuildDay, b.Date, err)
	}
	start, _ := time.Parse(dateLayout, epoch)
	if day.Before(start) {
		return 0, fmt.Errorf("%w: %s", ErrBeforeEpoch, b.Date)
	}
	return int(day.Sub(start) / (24 * time.Hour)), nil
}

func (b Build) String() string {
	n, err := b.Number()
	if err != nil {
		return fmt.Sprintf("%s dev build (%v)", Name, err)
	}
	return fmt.Sprintf("%s build %d (%s) commit %s, branch %s, ci %s",
		Name, n, b.Date,
		orUnknown(b.Commit), orUnknown(b.Branch), orDefault(b.CI, "local"))
}

// Fields - то же для структурного лога при старте.
func (b Build) Fields() logrus.Fields {
	fields := logrus.Fields{
		"app":    Name,
		"commit": orUnknown(b.Commit),
		"branch": orUnknown(b.Branch),
	}
	if n, err := b.Number(); err == nil {
		fields["build"] = n
	}
	return fields
}

func orUnknown(v string) string {
	return orDefault(v, "unknown")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
