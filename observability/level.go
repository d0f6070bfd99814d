package observability

import (
	"os"
	"strconv"
	"strings"
)

// Level is a verbosity threshold. A logger configured with level k prints
// every message whose level is <= k.
type Level int

const (
	LevelNone Level = iota
	LevelWarn
	LevelError
	LevelInfo
	LevelTrace
	LevelCompress
	LevelMemory
	LevelPlot
	LevelInsane
	LevelAll
)

// DefaultLevel only lets warnings and errors through.
const DefaultLevel = LevelError

// EnvTrace names the environment variable read by LevelFromEnv.
const EnvTrace = "DWGKIT_TRACE"

var levelNames = [...]string{"none", "warn", "error", "info", "trace", "compress", "memory", "plot", "insane", "all"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel accepts either the numeric form ("4") or the level name ("trace").
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(LevelNone) {
			return LevelNone, true
		}
		if n > int(LevelAll) {
			return LevelAll, true
		}
		return Level(n), true
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), true
		}
	}
	return DefaultLevel, false
}

// LevelFromEnv reads the threshold from EnvTrace, falling back to DefaultLevel.
func LevelFromEnv() Level {
	v, ok := os.LookupEnv(EnvTrace)
	if !ok {
		return DefaultLevel
	}
	lvl, _ := ParseLevel(v)
	return lvl
}

// Verbosity tags a Debug message with the trace-scale level it belongs to.
func Verbosity(l Level) Field { return anyField{verbosityKey, l} }

const verbosityKey = "v"

// LevelEnabler is implemented by loggers that can report whether a level
// would be printed, so callers can skip building expensive messages.
type LevelEnabler interface {
	Enabled(lvl Level) bool
}

// Enabled reports whether l prints messages at lvl. Loggers that do not
// implement LevelEnabler are assumed to print everything.
func Enabled(l Logger, lvl Level) bool {
	if e, ok := l.(LevelEnabler); ok {
		return e.Enabled(lvl)
	}
	return true
}

// Trace logs msg at the given trace-scale level through Debug.
func Trace(l Logger, lvl Level, msg string, fields ...Field) {
	if !Enabled(l, lvl) {
		return
	}
	l.Debug(msg, append(fields, Verbosity(lvl))...)
}

func verbosityOf(fields []Field) (Level, bool) {
	for _, f := range fields {
		if f.Key() == verbosityKey {
			if lvl, ok := f.Value().(Level); ok {
				return lvl, true
			}
		}
	}
	return LevelTrace, false
}
