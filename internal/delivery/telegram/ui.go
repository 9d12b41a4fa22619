package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

const sheetButtonsPerRow = 5

// buildSheetKeyboard builds one button per day, five per row.
func buildSheetKeyboard(days []entities.DayPlan) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, d := range days {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(d.Day), buildDayCallback(d.Day)))
		if len(row) == sheetButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDayKeyboard builds toggle buttons for every problem of day plus navigation.
func buildDayKeyboard(day *entities.DayPlan, state *entities.ProgressState, totalDays int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, p := range day.Problems {
		solveLabel := fmt.Sprintf("%d ⬜ Solve", i+1)
		if state.Solved.Has(p.ID) {
			solveLabel = fmt.Sprintf("%d ✅ Solved", i+1)
		}

		attemptLabel := "🤔 Try"
		if state.Attempted.Has(p.ID) {
			attemptLabel = "🟡 Trying"
		}

		bookmarkLabel := "📑"
		if state.Bookmarked.Has(p.ID) {
			bookmarkLabel = "🔖"
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(solveLabel, buildToggleCallback(actionSolve, day.Day, p.ID)),
			tgbotapi.NewInlineKeyboardButtonData(attemptLabel, buildToggleCallback(actionAttempt, day.Day, p.ID)),
			tgbotapi.NewInlineKeyboardButtonData(bookmarkLabel, buildToggleCallback(actionBookmark, day.Day, p.ID)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if day.Day > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Day "+strconv.Itoa(day.Day-1), buildDayCallback(day.Day-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("📋 Sheet", buildSheetCallback()))
	if day.Day < totalDays {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Day "+strconv.Itoa(day.Day+1)+" ▶️", buildDayCallback(day.Day+1)))
	}
	rows = append(rows, nav)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCalendarKeyboard builds month navigation around year/month.
func buildCalendarKeyboard(year int, month time.Month) tgbotapi.InlineKeyboardMarkup {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ "+prev.Format("Jan 2006"), buildCalendarCallback(prev.Year(), prev.Month())),
			tgbotapi.NewInlineKeyboardButtonData(next.Format("Jan 2006")+" ▶️", buildCalendarCallback(next.Year(), next.Month())),
		),
	)
}

func buildStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildStatsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📋 Sheet", buildSheetCallback()),
		),
	)
}

func buildProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Sync again", buildRefreshCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", buildStatsCallback()),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Open the sheet", buildSheetCallback()),
		),
	)
}
