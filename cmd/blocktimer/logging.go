package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "blocktimer.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging opens the debug log, rotating it once it grows past maxLogSize
// Without debug the returned logger discards everything and the file is nil.
// The terminal owns stdout, so logs only ever go to a file
func setupLogging(debug bool, path string) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.Nop(), nil
	}
	if path == "" {
		path = filepath.Join(logDir, logFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v (continuing without logs)\n", err)
		return zerolog.Nop(), nil
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v (continuing without logs)\n", err)
		return zerolog.Nop(), nil
	}

	logger := zerolog.New(f).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("app", "blocktimer").
		Logger()
	return logger, f
}
