// Package logrus adapts a logrus entry to cache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-dao-cache/cache"
)

var _ cache.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New wraps l, tagging every entry with component=daocache.
func New(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return Logger{E: l.WithField("component", "daocache")}
}

func (l Logger) Debug(msg string, f cache.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f cache.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f cache.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f cache.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f cache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	entry := l.E
	if err, ok := f["err"].(error); ok {
		entry = entry.WithError(err)
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			continue
		}
		out[k] = v
	}
	return entry.WithFields(out)
}
