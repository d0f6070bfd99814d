package observability

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultSinkCapacity is the number of diagnostics an ErrorSink retains.
const DefaultSinkCapacity = 13

// ErrorSink is a bounded fifo of diagnostic strings. When full, pushing a
// new message drops the oldest one.
type ErrorSink struct {
	mu    sync.Mutex
	first int
	last  int
	msgs  []string
}

func NewErrorSink(capacity int) *ErrorSink {
	if capacity <= 0 {
		capacity = DefaultSinkCapacity
	}
	return &ErrorSink{msgs: make([]string, capacity)}
}

func (s *ErrorSink) Capacity() int { return len(s.msgs) }

// Push appends msg. Empty messages are ignored since an empty slot marks the
// fifo as drained.
func (s *ErrorSink) Push(msg string) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.msgs[s.last] != "" {
		s.last = s.next(s.last)
		if s.last == s.first {
			s.first = s.next(s.first)
		}
	}
	s.msgs[s.last] = msg
}

// Pop returns the oldest buffered message.
func (s *ErrorSink) Pop() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.first != s.last {
		msg := s.msgs[s.first]
		s.msgs[s.first] = ""
		s.first = s.next(s.first)
		return msg, true
	}
	msg := s.msgs[s.first]
	if msg == "" {
		return "", false
	}
	s.msgs[s.first] = ""
	return msg, true
}

// Drain pops every buffered message, oldest first.
func (s *ErrorSink) Drain() []string {
	var out []string
	for {
		msg, ok := s.Pop()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

func (s *ErrorSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		s.msgs[i] = ""
	}
	s.first, s.last = 0, 0
}

func (s *ErrorSink) next(i int) int {
	i++
	if i >= len(s.msgs) {
		return 0
	}
	return i
}

type sinkLogger struct {
	next   Logger
	sink   *ErrorSink
	fields []Field
}

// NewSinkLogger forwards every call to next and additionally records Warn
// and Error messages in sink, whatever the verbosity of next.
func NewSinkLogger(next Logger, sink *ErrorSink) Logger {
	if next == nil {
		next = NopLogger{}
	}
	return &sinkLogger{next: next, sink: sink}
}

func (l *sinkLogger) Enabled(lvl Level) bool { return Enabled(l.next, lvl) }

func (l *sinkLogger) Debug(msg string, fields ...Field) { l.next.Debug(msg, fields...) }
func (l *sinkLogger) Info(msg string, fields ...Field)  { l.next.Info(msg, fields...) }

func (l *sinkLogger) Warn(msg string, fields ...Field) {
	l.sink.Push(format("WARN", msg, l.fields, fields))
	l.next.Warn(msg, fields...)
}

func (l *sinkLogger) Error(msg string, fields ...Field) {
	l.sink.Push(format("ERROR", msg, l.fields, fields))
	l.next.Error(msg, fields...)
}

func (l *sinkLogger) With(fields ...Field) Logger {
	merged := append(append([]Field(nil), l.fields...), fields...)
	return &sinkLogger{next: l.next.With(fields...), sink: l.sink, fields: merged}
}

func format(tag, msg string, groups ...[]Field) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(tag)
	b.WriteString("] ")
	b.WriteString(msg)
	for _, fields := range groups {
		for _, f := range fields {
			fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
		}
	}
	return b.String()
}
