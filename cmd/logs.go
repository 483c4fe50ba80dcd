package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger. quiet wins over verbose.
func newLogger(w io.Writer, verbose, quiet bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: logPrefix,
	})

	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if isTerminal(w) {
		logger.SetStyles(logStyles())
	}

	return logger
}

const logPrefix = "aasp"

func logStyles() *log.Styles {
	colors := catppuccinMocha()

	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Foreground(colors.muted)
	styles.Key = lipgloss.NewStyle().Foreground(colors.subtext)
	styles.Value = lipgloss.NewStyle().Foreground(colors.text)

	levels := map[log.Level]lipgloss.Color{
		log.DebugLevel: colors.muted,
		log.InfoLevel:  colors.blue,
		log.WarnLevel:  colors.yellow,
		log.ErrorLevel: colors.red,
		log.FatalLevel: colors.red,
	}
	for level, color := range levels {
		styles.Levels[level] = styles.Levels[level].Foreground(color)
	}

	return styles
}
