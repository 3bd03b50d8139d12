package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// tickMsg is sent every second while the session is live.
type tickMsg time.Time

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
