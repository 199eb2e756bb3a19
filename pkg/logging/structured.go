package logging

import (
	golog "github.com/fclairamb/go-log"
)

// StructuredLogger is a go-log Logger which can also emit per-request trace events.
type StructuredLogger interface {
	golog.Logger

	Trace(event string, keyvals ...interface{})
}
