package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "mazecar.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging builds the root logger
// The file under logDir is written only with debug; console goes to stderr only when
// the terminal is not owned by the renderer. With neither, everything is discarded
func setupLogging(debug, console bool, level string) (zerolog.Logger, *os.File) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var writers []io.Writer
	var logFile *os.File

	if debug {
		logFile = openLogFile()
		if logFile != nil {
			writers = append(writers, logFile)
		}
	}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	if len(writers) == 0 {
		return zerolog.New(io.Discard), nil
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(level, debug)).
		With().Timestamp().Logger(), logFile
}

// parseLevel maps a config level name; debug raises the floor to DebugLevel
func parseLevel(name string, debug bool) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	return lvl
}

// openLogFile creates logDir, rotates an oversized log aside and opens the log for append
func openLogFile() *os.File {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logs directory: %v\n", err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("mazecar_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return nil
	}
	return f
}
