package logging

import (
	"io"
	"log"
	"os"

	"patient-kiosk-backend/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the standard logger through a size-rotated file, optionally
// teeing to stdout for interactive runs.
func Setup(cfg config.LogConfig) {
	logFile := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	if cfg.ToConsole {
		mw := io.MultiWriter(os.Stdout, logFile)
		log.SetOutput(mw)
	} else {
		log.SetOutput(logFile)
	}
}
