package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type outputStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	// header is the table header row.
	header lipgloss.Style
	cell   lipgloss.Style
}

// newOutputStyles returns plain styles unless w is a terminal.
func newOutputStyles(w io.Writer) outputStyles {
	plain := lipgloss.NewStyle()
	cell := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

	if !isTerminal(w) {
		return outputStyles{
			title:  plain,
			label:  plain,
			value:  plain,
			muted:  plain,
			ok:     plain,
			warn:   plain,
			fail:   plain,
			header: cell,
			cell:   cell,
		}
	}

	colors := catppuccinMocha()
	return outputStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(colors.accent),
		label:  lipgloss.NewStyle().Bold(true).Foreground(colors.text),
		value:  lipgloss.NewStyle().Foreground(colors.blue),
		muted:  lipgloss.NewStyle().Foreground(colors.muted),
		ok:     lipgloss.NewStyle().Foreground(colors.green),
		warn:   lipgloss.NewStyle().Foreground(colors.yellow),
		fail:   lipgloss.NewStyle().Foreground(colors.red),
		header: cell.Bold(true).Foreground(colors.accent),
		cell:   cell.Foreground(colors.text),
	}
}

type uiColors struct {
	text    lipgloss.Color
	subtext lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	blue    lipgloss.Color
	green   lipgloss.Color
	yellow  lipgloss.Color
	red     lipgloss.Color
}

func catppuccinMocha() uiColors {
	return uiColors{
		text:    lipgloss.Color("#cdd6f4"),
		subtext: lipgloss.Color("#bac2de"),
		muted:   lipgloss.Color("#6c7086"),
		accent:  lipgloss.Color("#cba6f7"),
		blue:    lipgloss.Color("#89b4fa"),
		green:   lipgloss.Color("#a6e3a1"),
		yellow:  lipgloss.Color("#f9e2af"),
		red:     lipgloss.Color("#f38ba8"),
	}
}
