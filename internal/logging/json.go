package logging

import (
	"fmt"
	"io"

	golog "github.com/fclairamb/go-log"
	"github.com/sirupsen/logrus"
)

var verbosityLevels = []logrus.Level{
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

type JSONLogger struct {
	entry *logrus.Entry
}

// NewJSONLogger returns a logger writing one JSON object per line to out.
// Verbosity ranges from 0 (errors only) to 4 (trace).
func NewJSONLogger(out io.Writer, verbosity int) *JSONLogger {
	if verbosity < 0 {
		verbosity = 0
	}

	if verbosity >= len(verbosityLevels) {
		verbosity = len(verbosityLevels) - 1
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(verbosityLevels[verbosity])

	return &JSONLogger{logrus.NewEntry(l)}
}

func (l *JSONLogger) fields(keyvals []interface{}) logrus.Fields {
	fields := logrus.Fields{}

	for i := 0; i < len(keyvals); i += 2 {
		if i+1 >= len(keyvals) {
			fields["extra"] = keyvals[i]

			break
		}

		fields[fmt.Sprintf("%v", keyvals[i])] = keyvals[i+1]
	}

	return fields
}

func (l *JSONLogger) Trace(event string, keyvals ...interface{}) {
	l.entry.WithFields(l.fields(keyvals)).Trace(event)
}

func (l *JSONLogger) Debug(event string, keyvals ...interface{}) {
	l.entry.WithFields(l.fields(keyvals)).Debug(event)
}

func (l *JSONLogger) Info(event string, keyvals ...interface{}) {
	l.entry.WithFields(l.fields(keyvals)).Info(event)
}

func (l *JSONLogger) Warn(event string, keyvals ...interface{}) {
	l.entry.WithFields(l.fields(keyvals)).Warn(event)
}

func (l *JSONLogger) Error(event string, keyvals ...interface{}) {
	l.entry.WithFields(l.fields(keyvals)).Error(event)
}

func (l *JSONLogger) With(keyvals ...interface{}) golog.Logger {
	return &JSONLogger{l.entry.WithFields(l.fields(keyvals))}
}
