package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/circled/config"
)

const logFileName = "circled.log"

// setupLogging routes the standard logger to <dir>/circled.log when debug is on
// and discards it otherwise; stdout and stderr belong to the screen
// Files larger than MaxSize are rotated to a timestamped name first
func setupLogging(lc config.LogSection) *os.File {
	if !lc.Debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(lc.Dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(lc.Dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > lc.MaxSize {
		rotated := filepath.Join(lc.Dir, fmt.Sprintf("circled_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	return logFile
}
