package observability

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type kitLogger struct {
	base      log.Logger
	threshold Level
}

// NewKitLogger returns a logfmt Logger writing to w. Messages above the
// threshold are discarded.
func NewKitLogger(w io.Writer, threshold Level) Logger {
	base := log.NewLogfmtLogger(log.NewSyncWriter(w))
	base = log.With(base, "lib", "dwgkit")
	return &kitLogger{base: base, threshold: threshold}
}

// WrapKitLogger adapts an existing go-kit logger.
func WrapKitLogger(base log.Logger, threshold Level) Logger {
	return &kitLogger{base: base, threshold: threshold}
}

func (k *kitLogger) Enabled(lvl Level) bool { return lvl != LevelNone && k.threshold >= lvl }

func (k *kitLogger) Debug(msg string, fields ...Field) {
	lvl, _ := verbosityOf(fields)
	if !k.Enabled(lvl) {
		return
	}
	_ = level.Debug(k.base).Log(keyvals(msg, fields)...)
}

func (k *kitLogger) Info(msg string, fields ...Field) {
	if !k.Enabled(LevelInfo) {
		return
	}
	_ = level.Info(k.base).Log(keyvals(msg, fields)...)
}

func (k *kitLogger) Warn(msg string, fields ...Field) {
	if !k.Enabled(LevelWarn) {
		return
	}
	_ = level.Warn(k.base).Log(keyvals(msg, fields)...)
}

func (k *kitLogger) Error(msg string, fields ...Field) {
	if !k.Enabled(LevelError) {
		return
	}
	_ = level.Error(k.base).Log(keyvals(msg, fields)...)
}

func (k *kitLogger) With(fields ...Field) Logger {
	kv := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		kv = append(kv, f.Key(), f.Value())
	}
	return &kitLogger{base: log.With(k.base, kv...), threshold: k.threshold}
}

func keyvals(msg string, fields []Field) []interface{} {
	kv := make([]interface{}, 0, 2+2*len(fields))
	kv = append(kv, "msg", msg)
	for _, f := range fields {
		v := f.Value()
		if lvl, ok := v.(Level); ok {
			v = lvl.String()
		}
		kv = append(kv, f.Key(), v)
	}
	return kv
}
