package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func titleStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func headerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1)
}

func cellStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
}

func mutedStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func selectedStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func warningStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
}

// Separator is a muted rule with a centre mark.
func Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return mutedStyle(CurrentTheme).Render(left + " ◆ " + right)
}
