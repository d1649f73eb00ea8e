// Package clilog is a small leveled stderr logger for the CLI, mirroring
// the global-flags logInfo/logDebug/logError pattern: verbosity is a
// count (-v, -vv) rather than named levels, and quiet suppresses info and
// warning output; errors always print, and debug output prints at -vv
// whether or not quiet is set.
package clilog

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger carries the verbosity/quiet state threaded through a run.
type Logger struct {
	Verbose int
	Quiet   bool
	NoColor bool
}

// New returns a Logger, disabling fatih/color globally when requested.
func New(verbose int, quiet, noColor bool) *Logger {
	if noColor {
		color.NoColor = true
	}
	return &Logger{Verbose: verbose, Quiet: quiet, NoColor: noColor}
}

// Info prints at -v and above.
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.Quiet && l.Verbose >= 1 {
		fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]interface{}{color.CyanString("[info]")}, args...)...)
	}
}

// Debug prints at -vv and above, regardless of quiet — useful for
// troubleshooting a run that was otherwise told to be silent.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.Verbose >= 2 {
		fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]interface{}{color.HiBlackString("[debug]")}, args...)...)
	}
}

// Warn always prints unless quiet.
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.Quiet {
		fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]interface{}{color.YellowString("[warn]")}, args...)...)
	}
}

// Error always prints, quiet or not — a run that fails should say why.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]interface{}{color.RedString("[error]")}, args...)...)
}
