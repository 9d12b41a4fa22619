package telegram

import (
	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// SendStreakReminder implements service.ReminderNotifier.
func (h *Handler) SendStreakReminder(chatID int64, reminder entities.StreakReminder) error {
	msg := newMessage(chatID, renderReminder(reminder))
	msg.ReplyMarkup = buildReminderKeyboard()
	return h.send(msg)
}
