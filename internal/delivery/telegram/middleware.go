package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/repository"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			text, known := userMessage(err)
			if known {
				h.logger.Debug("request rejected",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			} else {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, text)
			return nil
		}
		return nil
	}
}

// userMessage translates err into a reply. Errors the user can act on are
// reported as known; everything else gets the generic message.
func userMessage(err error) (string, bool) {
	var apiErr *codeforces.APIError
	var decodeErr *codeforces.DecodeError
	var urlErr *url.Error

	switch {
	case errors.As(err, &apiErr):
		if apiErr.Comment != "" {
			return fmt.Sprintf("Codeforces: %s", apiErr.Comment), true
		}
		return msgCodeforcesDown, true
	case errors.As(err, &decodeErr):
		return msgCodeforcesDecode, true
	case errors.As(err, &urlErr):
		return msgCodeforcesDown, true
	case errors.Is(err, codeforces.ErrEmptyHandle):
		return msgEmptyHandle, true
	case errors.Is(err, service.ErrNoHandle):
		return msgNoHandle, true
	case errors.Is(err, service.ErrUnauthorized):
		return msgUnauthorized, true
	case errors.Is(err, service.ErrAdminDisabled):
		return msgAdminDisabled, true
	case errors.Is(err, service.ErrWrongPassword):
		return msgWrongPassword, true
	case errors.Is(err, service.ErrInvalidTask):
		return err.Error(), true
	case errors.Is(err, entities.ErrTaskNotFound):
		return msgTaskNotFound, true
	case errors.Is(err, repository.ErrDayNotFound):
		return msgDayNotFound, true
	}
	return msgInternalError, false
}
