package schema

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger receives the fully formatted lines produced while resolving a tree.
// Info carries successful and defaulted values, Error carries problems.
type Logger interface {
	Info(msg string)
	Error(msg string)
}

// Discard drops every line.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Info(string)  {}
func (discardLogger) Error(string) {}

// ConsoleLogger writes one line per message to a writer, colouring error lines
// red when the writer is a terminal.
type ConsoleLogger struct {
	mu    sync.Mutex
	w     io.Writer
	info  *color.Color
	error *color.Color
}

// NewConsoleLogger returns a ConsoleLogger writing to w. Colour is enabled only
// if w is a terminal and NO_COLOR is not set.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	info := color.New(color.FgGreen)
	errc := color.New(color.FgRed, color.Bold)
	if !isTerminal(w) || color.NoColor {
		info.DisableColor()
		errc.DisableColor()
	} else {
		info.EnableColor()
		errc.EnableColor()
	}
	return &ConsoleLogger{w: w, info: info, error: errc}
}

// DefaultLogger is the console logger used by Parse when no logger is given.
func DefaultLogger() Logger {
	return NewConsoleLogger(os.Stderr)
}

func (l *ConsoleLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info.Fprintln(l.w, msg)
}

func (l *ConsoleLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.error.Fprintln(l.w, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SlogLogger forwards lines to a structured logger at info and error level.
type SlogLogger struct {
	Logger *slog.Logger
}

func (l SlogLogger) Info(msg string)  { l.Logger.Info(msg) }
func (l SlogLogger) Error(msg string) { l.Logger.Error(msg) }

// Line is one message captured by a MemoryLogger.
type Line struct {
	Error bool   `json:"error"`
	Text  string `json:"text"`
}

// MemoryLogger records every line in emission order. It is safe for use by
// concurrent parses.
type MemoryLogger struct {
	mu    sync.Mutex
	lines []Line
}

func (l *MemoryLogger) Info(msg string)  { l.add(Line{Text: msg}) }
func (l *MemoryLogger) Error(msg string) { l.add(Line{Error: true, Text: msg}) }

func (l *MemoryLogger) add(line Line) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Lines returns a copy of the recorded lines.
func (l *MemoryLogger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Line(nil), l.lines...)
}

// Texts returns the recorded message texts.
func (l *MemoryLogger) Texts() []string {
	lines := l.Lines()
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return texts
}
