package logs

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// ErrInvalidLevel is returned for a missing or unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// Record is one captured log entry.
type Record struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Logger  string         `json:"logger,omitempty"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// ParseLevel maps a level name (debug, info, warn, error, dpanic, panic,
// fatal; any case) to a zap level. The empty string is not a level.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InvalidLevel, ErrInvalidLevel
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InvalidLevel, ErrInvalidLevel
	}
	return l, nil
}

func IsValidLevel(level string) bool {
	_, err := ParseLevel(level)
	return err == nil
}

type ring struct {
	mu      sync.Mutex
	records []Record
	next    int
	full    bool
}

func (r *ring) add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[r.next] = rec
	r.next = (r.next + 1) % len(r.records)
	if r.next == 0 {
		r.full = true
	}
}

// snapshot returns the records oldest first.
func (r *ring) snapshot() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]Record(nil), r.records[:r.next]...)
	}
	out := make([]Record, 0, len(r.records))
	out = append(out, r.records[r.next:]...)
	return append(out, r.records[:r.next]...)
}

// Recorder is a zapcore.Core that keeps the most recent entries in memory
// so they can be queried back. Tee it next to the real output core.
type Recorder struct {
	zapcore.LevelEnabler
	buf     *ring
	context []zapcore.Field
}

// NewRecorder keeps up to size entries at or above enab.
func NewRecorder(size int, enab zapcore.LevelEnabler) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{
		LevelEnabler: enab,
		buf:          &ring{records: make([]Record, size)},
	}
}

func (r *Recorder) With(fields []zapcore.Field) zapcore.Core {
	ctx := make([]zapcore.Field, 0, len(r.context)+len(fields))
	ctx = append(ctx, r.context...)
	ctx = append(ctx, fields...)
	return &Recorder{LevelEnabler: r.LevelEnabler, buf: r.buf, context: ctx}
}

func (r *Recorder) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if r.Enabled(ent.Level) {
		return ce.AddCore(ent, r)
	}
	return ce
}

func (r *Recorder) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range r.context {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	rec := Record{
		Time:    ent.Time.UTC(),
		Level:   ent.Level.String(),
		Logger:  ent.LoggerName,
		Message: ent.Message,
	}
	if len(enc.Fields) > 0 {
		rec.Fields = enc.Fields
	}
	r.buf.add(rec)
	return nil
}

func (r *Recorder) Sync() error {
	return nil
}

// Query returns the captured records with start <= time <= end and a level
// at or above level, oldest first. A zero start or end leaves that side open.
func (r *Recorder) Query(start, end time.Time, level zapcore.Level) []Record {
	out := []Record{}
	for _, rec := range r.buf.snapshot() {
		if !start.IsZero() && rec.Time.Before(start) {
			continue
		}
		if !end.IsZero() && rec.Time.After(end) {
			continue
		}
		l, err := zapcore.ParseLevel(rec.Level)
		if err != nil || l < level {
			continue
		}
		out = append(out, rec)
	}
	return out
}

var _ zapcore.Core = (*Recorder)(nil)
