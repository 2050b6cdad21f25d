package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	option    lipgloss.Style
	cursor    lipgloss.Style
	selected  lipgloss.Style
	correct   lipgloss.Style
	incorrect lipgloss.Style
	score     lipgloss.Style
	help      lipgloss.Style
}

var darkPalette = palette{
	title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
	subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	option:    lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0")),
	cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
	selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A777E3")).Bold(true),
	correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#26D782")).Bold(true),
	incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
	score:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
	help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
}

var lightPalette = palette{
	title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A2E")).Bold(true),
	subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626C7F")),
	option:    lipgloss.NewStyle().Foreground(lipgloss.Color("#313E51")),
	cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A15E0A")).Bold(true),
	selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6741D9")).Bold(true),
	correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0E8A54")).Bold(true),
	incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#C4281C")).Bold(true),
	score:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A2E")).Bold(true),
	help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
}
