package mergelog

import (
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/sirupsen/logrus"
)

// LogrusLogger is the default Logger implementation: structured
// logging via sirupsen/logrus, one entry per resolution event.
type LogrusLogger struct {
	log *logrus.Entry
}

// NewLogrusLogger wraps a *logrus.Logger (or logrus.StandardLogger())
// with the "component":"resolver" field pre-attached.
func NewLogrusLogger(log *logrus.Logger) *LogrusLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusLogger{log: log.WithField("component", "resolver")}
}

func (l *LogrusLogger) Add(idx identity.Index) {
	l.log.WithFields(logrus.Fields{
		"event": "add",
		"path":  idx.RelPath,
		"pid":   idx.Pid.Value(),
	}).Info("no conflict, adding file")
}

func (l *LogrusLogger) Replace(existing, with identity.Index) {
	l.log.WithFields(logrus.Fields{
		"event":    "replace",
		"path":     with.RelPath,
		"pid":      with.Pid.Value(),
		"replaces": existing.Pid.Value(),
	}).Info("replacing conflicting file")
}

func (l *LogrusLogger) Merge(existing, with identity.Index) {
	l.log.WithFields(logrus.Fields{
		"event":    "merge",
		"path":     with.RelPath,
		"pid":      with.Pid.Value(),
		"mergedOf": existing.Pid.Value(),
	}).Info("merging conflicting file")
}

func (l *LogrusLogger) Rename(existing, renamed identity.Index) {
	l.log.WithFields(logrus.Fields{
		"event":      "rename",
		"path":       existing.RelPath,
		"pid":        existing.Pid.Value(),
		"renamedTo":  renamed.RelPath,
	}).Info("renaming conflicting file")
}
