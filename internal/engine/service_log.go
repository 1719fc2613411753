package engine

import (
	"fmt"
	"time"

	"deepstore-server/pkg/api"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog создает запись лога мира и дублирует её в логгер сервера.
func (s *Service) AddLog(text, logType string) api.LogEntry {
	s.logSeq++
	entry := api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.World.Tick, s.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "world_log",
		"log_type":  logType,
		"tick":      s.World.Tick,
	}).Info(text)
	return entry
}
