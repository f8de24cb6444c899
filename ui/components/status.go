package components

import (
	"github.com/Rorical/StudyAssist/ui/styles"
)

const keyHelp = "ctrl+s submit • ctrl+l clear • esc quit"

func RenderStatus(status string, width int) string {
	content := status
	if content == "" {
		content = "Ready"
	}
	return styles.StatusStyle(width).Render(content + "  |  " + keyHelp)
}
