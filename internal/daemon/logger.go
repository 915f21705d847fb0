package daemon

import (
	"fmt"
	"log"
	"log/syslog"
	"os"
)

// Logger funnels every diagnostic the daemon produces through a single
// point, the way the original daemon's info()/msg() helpers did: one
// line, prefixed with the program name, optionally mirrored to the
// system log. Verbose tracing of individual events also goes through
// here so -q can silence it in one place.
type Logger struct {
	prefix  string
	verbose bool
	sys     *log.Logger
}

// NewLogger returns a Logger that writes to stderr, prefixed with
// prefix. If mirrorSyslog is true, every message is additionally sent
// to the system log via [log/syslog]; a failure to reach syslogd is
// reported once and mirroring is left disabled for the rest of the run.
func NewLogger(prefix string, verbose, mirrorSyslog bool) *Logger {
	var (
		logger *Logger = &Logger{prefix: prefix, verbose: verbose}
		writer *syslog.Writer
		err    error
	)

	if !mirrorSyslog {
		return logger
	}

	writer, err = syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: syslog unavailable: %v\n", prefix, err)

		return logger
	}

	logger.sys = log.New(writer, "", 0)

	return logger
}

// Printf writes a single diagnostic line to stderr and, if enabled,
// to the system log.
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", l.prefix, fmt.Sprintf(format, args...))

	if l.sys != nil {
		l.sys.Printf(format, args...)
	}
}

// Trace writes format/args only when verbose tracing is enabled, for
// the per-event IN:/OUT: lines and the startup capability inventory.
func (l *Logger) Trace(format string, args ...any) {
	if !l.verbose {
		return
	}

	l.Printf(format, args...)
}

// Verbose reports whether verbose tracing was requested.
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Quiet closes the process's standard streams, matching the original
// daemon's console-suppression behavior for foreground -q runs. Errors
// closing the streams are deliberately ignored: there is nowhere left
// to report them once stderr itself may be gone.
func Quiet() {
	os.Stdin.Close()
	os.Stdout.Close()
	os.Stderr.Close()
}
