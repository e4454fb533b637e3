package log

import (
	stdlog "log"
	"strings"
)

type stdLogWriter struct {
	l Logger
}

func (w stdLogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		w.l.Info(msg)
	}
	return len(p), nil
}

// RedirectStdLog routes standard-library log output through l at info
// level, dropping the stdlib's own timestamp prefix.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdLogWriter{l: l.With(Component("stdlog"))})
}
