package engine

import (
	"fmt"
	"time"

	"github.com/gitter-badger/zoc/pkg/api"
	"github.com/gitter-badger/zoc/pkg/logger"
	"github.com/sirupsen/logrus"
)

// maxLogEntries - сколько записей хроники партии хранится в памяти.
const maxLogEntries = 256

// AddLog добавляет запись в хронику партии
func (g *Game) AddLog(text, logType string) {
	g.logSeq++
	g.Logs = append(g.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", g.turn, g.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(g.Logs) > maxLogEntries {
		g.Logs = g.Logs[len(g.Logs)-maxLogEntries:]
	}
	logger.Log.WithFields(logrus.Fields{
		"match":     g.MatchID,
		"component": "match_log",
		"log_type":  logType,
	}).Info(text)
}
