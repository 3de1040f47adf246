package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var levelStyles = map[Level]lipgloss.Style{
	DebugLevel: lipgloss.NewStyle().Faint(true),
	InfoLevel:  lipgloss.NewStyle(),
	WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

// DefaultLogger writes debug and info to stdout, warn and error to stderr.
// Level labels are coloured only when stdout is a terminal.
type DefaultLogger struct {
	mu           *sync.Mutex
	stdoutLogger *log.Logger
	stderrLogger *log.Logger
	level        *Level
	fields       Fields
	useColors    bool
}

func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, isatty.IsTerminal(os.Stdout.Fd()))
}

// NewLogger is NewDefaultLogger with explicit writers, mostly for tests and
// for the TUI, which owns the terminal.
func NewLogger(stdout, stderr io.Writer, useColors bool) *DefaultLogger {
	level := InfoLevel
	return &DefaultLogger{
		mu:           &sync.Mutex{},
		stdoutLogger: log.New(stdout, "", log.LstdFlags),
		stderrLogger: log.New(stderr, "", log.LstdFlags),
		level:        &level,
		fields:       make(Fields),
		useColors:    useColors,
	}
}

func (d *DefaultLogger) formatMessage(level Level, err error, msg string, fields ...Fields) string {
	all := make(Fields)
	for k, v := range d.fields {
		all[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			all[k] = v
		}
	}

	label := "[" + level.String() + "]"
	if d.useColors {
		label = levelStyles[level].Render(label)
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}
	if len(all) > 0 {
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, all[k])
		}
	}
	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if level < *d.level {
		return
	}
	out := d.stdoutLogger
	if level >= WarnLevel {
		out = d.stderrLogger
	}
	out.Println(d.formatMessage(level, err, msg, fields...))
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// WithFields shares level and output with the parent logger.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(d.fields)+len(fields))
	for k, v := range d.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &DefaultLogger{
		mu:           d.mu,
		stdoutLogger: d.stdoutLogger,
		stderrLogger: d.stderrLogger,
		level:        d.level,
		fields:       merged,
		useColors:    d.useColors,
	}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	*d.level = level
}
