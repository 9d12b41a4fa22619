package telegram

import (
	"strconv"
	"strings"
	"time"
)

// Callback action constants.
const (
	actionSheet    = "sheet"
	actionDay      = "day"
	actionSolve    = "solve"
	actionAttempt  = "attempt"
	actionBookmark = "bookmark"
	actionStats    = "stats"
	actionCalendar = "cal"
	actionReset    = "reset"
	actionRefresh  = "cfrefresh"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildSheetCallback() string {
	return actionSheet
}

func buildDayCallback(day int) string {
	return callbackData{
		Action: actionDay,
		Params: []string{strconv.Itoa(day)},
	}.encode()
}

// buildToggleCallback builds callback data for flipping one flag of a problem
// shown on day. Problem ids never contain ':'.
func buildToggleCallback(action string, day int, problemID string) string {
	return callbackData{
		Action: action,
		Params: []string{strconv.Itoa(day), problemID},
	}.encode()
}

func buildStatsCallback() string {
	return actionStats
}

func buildCalendarCallback(year int, month time.Month) string {
	return callbackData{
		Action: actionCalendar,
		Params: []string{strconv.Itoa(year), strconv.Itoa(int(month))},
	}.encode()
}

func buildRefreshCallback() string {
	return actionRefresh
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
