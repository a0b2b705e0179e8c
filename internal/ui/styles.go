package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8")
)

// BranchColor picks a colour for a ref; long-lived branches stand out
func BranchColor(ref string) lipgloss.Color {
	switch strings.TrimPrefix(ref, "refs/heads/") {
	case "dev", "develop":
		return ColorGreen
	case "staging":
		return ColorYellow
	case "main", "master":
		return ColorRed
	default:
		return ColorWhite
	}
}
