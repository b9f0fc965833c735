package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/chunkcache"
)

var _ chunkcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every entry with component=chunkcache. A nil l uses logrus.StandardLogger.
func New(l *logrus.Logger) LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return LogrusLogger{E: l.WithField("component", "chunkcache")}
}

func (l LogrusLogger) Debug(msg string, f chunkcache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f chunkcache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f chunkcache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f chunkcache.Fields) { l.with(f).Error(msg) }

// with routes an "err" field through WithError so formatters render it as logrus.ErrorKey.
func (l LogrusLogger) with(f chunkcache.Fields) *logrus.Entry {
	e := l.E
	if err, ok := f["err"].(error); ok {
		e = e.WithError(err)
		rest := make(logrus.Fields, len(f))
		for k, v := range f {
			if k != "err" {
				rest[k] = v
			}
		}
		return e.WithFields(rest)
	}
	return e.WithFields(logrus.Fields(f))
}
