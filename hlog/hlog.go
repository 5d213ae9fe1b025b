// Package hlog wires zerolog behind a logr.Logger for the ccuctl CLI.
// On a terminal it writes human-readable output to stderr; otherwise it
// logs to a rotated file under the user's state directory so CLI output
// stays clean when scripted.
package hlog

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger logr.Logger

// Init configures the global Logger. verbose selects info level, debug
// selects debug level (shows V(1) logs), quiet forces error-only; the
// default is warn.
func Init(verbose, debug, quiet bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	var w io.Writer
	if IsTerminal() {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    !isColorTerminal(),
			TimeFormat: time.RFC3339,
		}
	} else {
		w = fileWriter()
	}

	level := parseLogLevel(verbose, debug, quiet)
	zerolog.SetGlobalLevel(level)

	zl := zerolog.New(w).Level(level).With().Caller().Timestamp().Logger()
	Logger = zerologr.New(&zl)
}

func parseLogLevel(verbose, debug, quiet bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	case quiet:
		return zerolog.ErrorLevel
	}
	return zerolog.WarnLevel
}

func isColorTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	if term := os.Getenv("TERM"); term != "" {
		if strings.HasSuffix(term, "-256color") ||
			strings.HasSuffix(term, "-color") ||
			strings.HasPrefix(term, "xterm") ||
			strings.HasPrefix(term, "screen") ||
			strings.HasPrefix(term, "vt100") ||
			strings.HasPrefix(term, "ansi") {
			return true
		}
	}

	return IsTerminal()
}

func fileWriter() io.Writer {
	logDir := getLogDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		// No writable state dir; better stderr than dropped logs.
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "ccuctl.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	}
}
