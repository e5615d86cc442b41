// Package logging builds the leveled key/value loggers used by the commands.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// New returns a logger writing to w with the given prefix. level is parsed
// with log.ParseLevel; an empty or invalid level means info.
func New(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  ParseLevel(level),
	})
	logger.SetStyles(styles())
	return logger
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	s.Levels[log.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Padding(0, 1).
		Background(lipgloss.Color("134")).
		Foreground(lipgloss.Color("0"))
	s.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	s.Values["err"] = lipgloss.NewStyle().Bold(true)
	return s
}
