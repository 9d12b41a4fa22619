package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/service"
)

type syncFunc func(ctx context.Context) (*service.SyncResult, error)

// handleCodeforces connects a handle, or refreshes the stored one when args is empty.
// The fetch runs in the background so the update loop is not held up.
func (h *Handler) handleCodeforces(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		handle := strings.TrimSpace(args)

		run := func(ctx context.Context) (*service.SyncResult, error) {
			if handle == "" {
				return h.codeforcesService.Refresh(ctx, userID)
			}
			return h.codeforcesService.Sync(ctx, userID, handle)
		}

		return h.startSync(ctx, chatID, userID, run)
	}
}

func (h *Handler) handleDisconnect(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.codeforcesService.Disconnect(ctx, userID); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, msgHandleDisconnect))
	}
}

// startSync posts a placeholder and replaces it with the outcome of run.
func (h *Handler) startSync(ctx context.Context, chatID, userID int64, run syncFunc) error {
	status, err := h.bot.Send(newPlainMessage(chatID, msgSyncInProgress))
	if err != nil {
		return err
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		res, err := run(ctx)
		switch {
		case errors.Is(err, service.ErrSuperseded):
			// A newer /cf owns the reply.
			h.request(tgbotapi.NewDeleteMessage(chatID, status.MessageID))

		case err != nil:
			text, known := userMessage(err)
			if !known {
				h.logger.Error("codeforces sync failed",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
			}
			h.edit(tgbotapi.NewEditMessageText(chatID, status.MessageID, text))

		default:
			edit := newEdit(chatID, status.MessageID, renderProfile(res))
			kb := buildProfileKeyboard()
			edit.ReplyMarkup = &kb
			h.edit(edit)
		}
	}()

	return nil
}
