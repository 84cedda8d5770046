package main

import "foxc/internal/report"

// logLevel is the minimum diagnostic severity the CLI prints, ported from
// the teacher's report.LogLevel* constants.
type logLevel int

const (
	logLevelSilent logLevel = iota
	logLevelError
	logLevelWarn
	logLevelNote
)

func parseLogLevel(s string) (logLevel, bool) {
	switch s {
	case "silent":
		return logLevelSilent, true
	case "error":
		return logLevelError, true
	case "warn":
		return logLevelWarn, true
	case "note", "verbose":
		return logLevelNote, true
	default:
		return 0, false
	}
}

func (lvl logLevel) minSeverity() report.Severity {
	switch lvl {
	case logLevelSilent:
		return report.Fatal + 1
	case logLevelError:
		return report.Error
	case logLevelWarn:
		return report.Warning
	default:
		return report.Note
	}
}

// levelFilterConsumer wraps another Consumer and drops diagnostics below a
// minimum severity before forwarding, the CLI's equivalent of the
// teacher's LogLevelSilent/Error/Warn/Verbose gate in report.InitReporter.
type levelFilterConsumer struct {
	next report.Consumer
	min  report.Severity
}

func (lf *levelFilterConsumer) Consume(sm *report.SourceManager, d report.Diagnostic) {
	if d.Severity < lf.min {
		return
	}
	lf.next.Consume(sm, d)
}
