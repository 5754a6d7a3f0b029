package telegram

import (
	"fmt"
	"remindbot/internal/core/domain/reminder"
	"strings"
)

const helpText = `I can remind you about things, once or every day.

/register - introduce yourself, required before scheduling
/remind - schedule a one-time reminder
/daily - schedule a daily reminder
/list - show your scheduled reminders
/delete - delete a reminder
/cancel - abort the current command`

func formatReminders(reminders []reminder.Reminder) string {
	if len(reminders) == 0 {
		return "You have no scheduled reminders."
	}
	lines := make([]string, 0, len(reminders)+1)
	lines = append(lines, "Your reminders:")
	for _, rem := range reminders {
		lines = append(lines, fmt.Sprintf("#%d %s (%s)", rem.ID, rem.Body, rem.Fires))
	}
	return strings.Join(lines, "\n")
}
