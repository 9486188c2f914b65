// Package logger provides console logging for mkbtrfs CLI runs.
//
// Output is prefixed with [HH:MM:SS] timestamps and filtered by log level.
// The formatting library itself never logs; only the CLI front-end uses this
// package.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs progress to a writer with timestamps and thread safety.
// It supports log level filtering to control message verbosity. Color output
// is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	// NO_COLOR and similar overrides are honored through the color library.
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// log writes a single timestamped line, applying colorize to the message
// when colors are enabled.
func (cl *ConsoleLogger) log(level string, colorize *color.Color, format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	message := fmt.Sprintf(format, args...)
	if cl.colorOutput && colorize != nil {
		message = colorize.Sprint(message)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] %s\n", time.Now().Format("15:04:05"), message)
}

// Tracef logs a formatted message at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.log("trace", nil, format, args...)
}

// Debugf logs a formatted message at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.log("debug", nil, format, args...)
}

// Infof logs a formatted message at info level.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.log("info", nil, format, args...)
}

// Warnf logs a formatted message at warn level, colored yellow on terminals.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log("warn", color.New(color.FgYellow), format, args...)
}

// Errorf logs a formatted message at error level, colored red on terminals.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log("error", color.New(color.FgRed), format, args...)
}
