package styles

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("62")
	success = lipgloss.Color("72")
	danger  = lipgloss.Color("160")
	muted   = lipgloss.Color("241")
	subtle  = lipgloss.Color("245")
)

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(accent).
		Bold(true).
		Padding(0, 1).
		Width(width).
		Align(lipgloss.Center)
}

func TaglineStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(subtle).
		Width(width).
		Align(lipgloss.Center).
		MarginBottom(1)
}

func PanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 2)
}

func PanelTitleStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		MarginBottom(1)
}

func InputTitleStyle() lipgloss.Style {
	return PanelTitleStyle(accent)
}

func OutputTitleStyle() lipgloss.Style {
	return PanelTitleStyle(success)
}

func ButtonStyle(enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1)
	if enabled {
		return style.
			Foreground(lipgloss.Color("255")).
			Background(accent).
			Bold(true)
	}
	return style.
		Foreground(muted).
		Background(lipgloss.Color("236"))
}

func ErrorTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(danger).
		Bold(true)
}

func ErrorBlockStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(danger).
		Foreground(lipgloss.Color("203")).
		Padding(0, 1).
		Width(width)
}

func PlaceholderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Width(width).
		Align(lipgloss.Center).
		Padding(2, 0)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func StepNumberStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
}

func HelpStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(subtle).
		Padding(0, 1).
		Width(width)
}

func FooterStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Width(width).
		Align(lipgloss.Center)
}
