// Package logger provides leveled logging for todoapp with a console/syslog
// backend and an optional file backend.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/op/go-logging"

	"github.com/todoapp/todoapp/config"
)

const (
	module      = "todoapp"
	logFileName = "todoapp.log"
	timeFormat  = "2006/01/02 15:04:05"
)

var (
	mu      sync.Mutex
	logger  *logging.Logger
	logFile *os.File
)

// InitLogger installs the console backend at level and, when a log folder is
// configured, a file backend that always logs at DEBUG.
func InitLogger(level logging.Level) {
	mu.Lock()
	defer mu.Unlock()

	newLogger := logging.MustGetLogger(module)
	backends := make([]logging.Backend, 0, 2)

	if consoleBackend := initDefaultBackend(); consoleBackend != nil {
		leveledBackend := logging.AddModuleLevel(consoleBackend)
		leveledBackend.SetLevel(level, module)
		backends = append(backends, leveledBackend)
	}

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveledBackend := logging.AddModuleLevel(fileBackend)
		leveledBackend.SetLevel(logging.DEBUG, module)
		backends = append(backends, leveledBackend)
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

// ParseLevel maps a configured level to a go-logging level.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

// initDefaultBackend uses stderr on Windows, syslog elsewhere with a stderr fallback.
func initDefaultBackend() logging.Backend {
	var backend logging.Backend
	includeTime := false

	if runtime.GOOS == "windows" {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = true
	} else if syslogBackend, err := logging.NewSyslogBackend(""); err != nil {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = os.Getppid() > 0
	} else {
		backend = syslogBackend
	}

	return logging.NewBackendFormatter(backend, newFormatter(includeTime))
}

func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	backend := logging.NewLogBackend(file, "", 0)
	return logging.NewBackendFormatter(backend, newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// get returns the active logger, creating a stderr one when InitLogger was
// never called (tests, CLI subcommands).
func get() *logging.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l := logging.MustGetLogger(module)
		backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), newFormatter(true))
		leveled := logging.AddModuleLevel(backend)
		leveled.SetLevel(logging.WARNING, module)
		l.SetBackend(leveled)
		logger = l
	}
	return logger
}

func Debug(args ...any) {
	get().Debug(args...)
}

func Debugf(format string, args ...any) {
	get().Debugf(format, args...)
}

func Info(args ...any) {
	get().Info(args...)
}

func Infof(format string, args ...any) {
	get().Infof(format, args...)
}

func Notice(args ...any) {
	get().Notice(args...)
}

func Noticef(format string, args ...any) {
	get().Noticef(format, args...)
}

func Warning(args ...any) {
	get().Warning(args...)
}

func Warningf(format string, args ...any) {
	get().Warningf(format, args...)
}

func Error(args ...any) {
	get().Error(args...)
}

func Errorf(format string, args ...any) {
	get().Errorf(format, args...)
}
