package server

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "debug"
}

// WebLogger implements core.Logger by writing to the server log and
// forwarding each message to a render's console channel
type WebLogger struct {
	renderID    string
	base        *zap.SugaredLogger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, base *zap.SugaredLogger, consoleChan chan<- ConsoleMessage) core.Logger {
	if base == nil {
		base = zap.NewNop().Sugar()
	}
	return &WebLogger{
		renderID:    renderID,
		base:        base.With("render", renderID),
		consoleChan: consoleChan,
	}
}

// Infof implements core.Logger
func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.base.Infof(format, args...)
	wl.send("info", format, args)
}

// Debugf implements core.Logger
func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.base.Debugf(format, args...)
	wl.send("debug", format, args)
}

func (wl *WebLogger) send(level, format string, args []interface{}) {
	if wl.consoleChan == nil {
		return
	}

	// Non-blocking: a slow client loses console lines, never tiles
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}
