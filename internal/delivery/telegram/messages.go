// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
	msgUseDay            = "Usage: /day N, where N is a day from 1 to 31."
	msgUseFind           = "Usage: /find <name> [rating:1200]"
	msgUseCalendar       = "Usage: /calendar or /calendar YYYY-MM"
	msgUseAdmin          = "Usage: /admin <password>"
	msgUseAddTask        = "Usage: /addtask link | name | topic | difficulty | platform | notes"
	msgUseEditTask       = "Usage: /edittask <id> field=value | field=value, fields: link, name, topic, difficulty, platform, notes"
	msgUseDelTask        = "Usage: /deltask <id>"
	msgNoHandle          = "No Codeforces handle connected yet. Use /cf <handle>."
	msgEmptyHandle       = "Please provide a Codeforces handle, for example /cf tourist."
	msgUnauthorized      = "This command needs an admin session. Log in with /admin <password>."
	msgAdminDisabled     = "The admin area is disabled on this bot."
	msgWrongPassword     = "Wrong password."
	msgTaskNotFound      = "No task with that id."
	msgDayNotFound       = "There is no such day on the sheet."
	msgCodeforcesDown    = "Could not reach Codeforces. Please try again in a minute."
	msgCodeforcesDecode  = "Codeforces sent a response I could not read. Please try again later."
	msgNothingFound      = "Nothing matches."
	msgNoContests        = "No upcoming contests right now."
	msgNoTasks           = "No daily tasks have been published yet."
	msgResetCancelled    = "Reset cancelled, your progress is untouched."
	msgResetDone         = "🧹 All progress cleared. Fresh start!"
	msgLoggedOut         = "Logged out of the admin area."
	msgLoggedIn          = "🔐 Logged in as admin. /addtask, /edittask and /deltask are now available."
	msgHandleDisconnect  = "Codeforces handle disconnected. Problems merged earlier stay solved."
	msgSyncInProgress    = "⏳ Fetching Codeforces data..."
	msgResetConfirmation = "⚠️ This clears every solved, attempted and bookmarked problem, your streak history and your Codeforces link. Continue?"
)

const listLimit = 25

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

var linkEscaper = strings.NewReplacer(`\`, `\\`, `)`, `\)`)

// link renders an inline MarkdownV2 link; an empty url renders the bare text.
func link(text, url string) string {
	if url == "" {
		return md(text)
	}
	return "[" + md(text) + "](" + linkEscaper.Replace(url) + ")"
}

var preEscaper = strings.NewReplacer("`", "\\`", `\`, `\\`)

// pre renders a monospace block.
func pre(s string) string {
	return "```\n" + preEscaper.Replace(s) + "\n```"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.DisableWebPagePreview = true
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("CP-31 Tracker"))
	sb.WriteString("\n\n")
	sb.WriteString(md("31 days, one topic a day, a handful of curated problems each. Mark what you solve and keep the streak alive."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMessage())

	return sb.String()
}

func helpMessage() string {
	lines := []string{
		"/sheet - the 31-day plan",
		"/day N - problems of day N with toggle buttons",
		"/find <name> [rating:1200] - search the sheet",
		"/unsolved - what is left",
		"/bookmarks - problems you saved for later",
		"/stats - progress and streaks",
		"/heatmap - recent activity",
		"/calendar [YYYY-MM] - month view",
		"/topics - progress per topic",
		"/cf <handle> - import solved problems from Codeforces",
		"/cf - refresh the connected handle",
		"/disconnect - forget the Codeforces handle",
		"/contests - upcoming contests",
		"/tasks - daily tasks from the admins",
		"/reset - start over",
	}
	return md(strings.Join(lines, "\n"))
}
