package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

// handleAdminLogin opens an admin session for the chat. The message carrying
// the password is removed from the chat either way.
func (h *Handler) handleAdminLogin(messageID int, args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		password := strings.TrimSpace(args)
		if password == "" {
			return h.send(newPlainMessage(chatID, msgUseAdmin))
		}

		h.request(tgbotapi.NewDeleteMessage(chatID, messageID))

		if err := h.adminService.Login(chatID, password); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, msgLoggedIn))
	}
}

func (h *Handler) handleAdminLogout() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.adminService.Logout(chatID)
		return h.send(newPlainMessage(chatID, msgLoggedOut))
	}
}

// handleTasks lists the daily tasks; admins also see the ids needed by /deltask.
func (h *Handler) handleTasks() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		tasks, err := h.adminService.ListTasks(ctx)
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, renderTasks(tasks, h.adminService.IsAdmin(chatID))))
	}
}

func (h *Handler) handleAddTask(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		in, err := parseTaskArgs(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseAddTask))
		}

		task, err := h.adminService.AddTask(ctx, chatID, in)
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, renderTaskAdded(task)))
	}
}

// handleEditTask changes selected fields of a task, e.g.
// "/edittask <id> notes=try two pointers | difficulty=medium".
func (h *Handler) handleEditTask(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, patch, err := parseTaskPatch(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseEditTask))
		}

		task, err := h.adminService.UpdateTask(ctx, chatID, id, patch)
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, renderTaskUpdated(task)))
	}
}

func (h *Handler) handleDeleteTask(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id := strings.TrimSpace(args)
		if id == "" {
			return h.send(newPlainMessage(chatID, msgUseDelTask))
		}

		if err := h.adminService.DeleteTask(ctx, chatID, id); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("🗑 Task %s deleted.", id)))
	}
}

// parseTaskArgs reads "link | name | topic | difficulty | platform | notes".
// Topic and notes may be empty; notes may be omitted.
func parseTaskArgs(args string) (service.NewTask, error) {
	parts := strings.SplitN(args, "|", 6)
	if len(parts) < 5 {
		return service.NewTask{}, errUsage
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	in := service.NewTask{
		ProblemLink: parts[0],
		ProblemName: parts[1],
		Topic:       parts[2],
		Difficulty:  entities.Difficulty(strings.ToLower(parts[3])),
		Platform:    entities.Platform(strings.ToLower(parts[4])),
	}
	if len(parts) == 6 {
		in.Notes = parts[5]
	}
	return in, nil
}

// parseTaskPatch reads "<id> field=value | field=value ...". Fields are link,
// name, topic, difficulty, platform and notes; an empty value clears the field.
func parseTaskPatch(args string) (string, entities.AdminTaskPatch, error) {
	var patch entities.AdminTaskPatch

	id, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if id == "" || strings.TrimSpace(rest) == "" {
		return "", patch, errUsage
	}

	for _, part := range strings.Split(rest, "|") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return "", patch, errUsage
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "link":
			patch.ProblemLink = &value
		case "name":
			patch.ProblemName = &value
		case "topic":
			patch.Topic = &value
		case "difficulty":
			d := entities.Difficulty(strings.ToLower(value))
			patch.Difficulty = &d
		case "platform":
			p := entities.Platform(strings.ToLower(value))
			patch.Platform = &p
		case "notes":
			patch.Notes = &value
		default:
			return "", patch, errUsage
		}
	}
	return id, patch, nil
}
