package telegram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

var heatGlyphs = [...]string{"·", "░", "▒", "▓", "█"}

// statusMark shows the state of a problem for the user.
func statusMark(state *entities.ProgressState, id string) string {
	switch {
	case state.Solved.Has(id):
		return "✅"
	case state.Attempted.Has(id):
		return "🟡"
	default:
		return "⬜"
	}
}

func renderSheet(days []entities.DayPlan, state *entities.ProgressState, completion int) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📋 CP-31 sheet, %d%% complete", completion)))
	sb.WriteString("\n\n")

	for _, d := range days {
		solved := 0
		for _, p := range d.Problems {
			if state.Solved.Has(p.ID) {
				solved++
			}
		}

		line := fmt.Sprintf("%s Day %02d · %s  %d/%d", d.Icon, d.Day, d.Topic, solved, len(d.Problems))
		if solved == len(d.Problems) {
			line += " ✅"
		}
		sb.WriteString(md(strings.TrimSpace(line)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(italic("Tap a day to open it."))
	return sb.String()
}

func renderDay(day *entities.DayPlan, state *entities.ProgressState) string {
	var sb strings.Builder

	sb.WriteString(bold(strings.TrimSpace(fmt.Sprintf("%s Day %d · %s", day.Icon, day.Day, day.Topic))))
	sb.WriteString("\n")
	if day.Description != "" {
		sb.WriteString(italic(day.Description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for i, p := range day.Problems {
		sb.WriteString(statusMark(state, p.ID))
		sb.WriteString(" ")
		sb.WriteString(md(fmt.Sprintf("%d. ", i+1)))
		sb.WriteString(link(p.Name, p.Link))
		sb.WriteString(md(" · " + problemMeta(p)))
		if state.Bookmarked.Has(p.ID) {
			sb.WriteString(" 🔖")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md("✅ solved · 🟡 attempted · 🔖 bookmarked"))
	return sb.String()
}

func problemMeta(p entities.Problem) string {
	meta := string(p.Platform) + " · " + string(p.Difficulty)
	if p.Rating != nil {
		meta += " · " + strconv.Itoa(*p.Rating)
	}
	return meta
}

func renderProblemList(title string, problems []entities.SheetProblem, state *entities.ProgressState) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%s (%d)", title, len(problems))))
	sb.WriteString("\n\n")

	if len(problems) == 0 {
		sb.WriteString(md(msgNothingFound))
		return sb.String()
	}

	for i, p := range problems {
		if i == listLimit {
			sb.WriteString(md(fmt.Sprintf("...and %d more", len(problems)-listLimit)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(statusMark(state, p.ID))
		sb.WriteString(md(fmt.Sprintf(" Day %d · ", p.Day)))
		sb.WriteString(link(p.Name, p.Link))
		sb.WriteString(md(" · " + problemMeta(p.Problem)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// statsView bundles what the /stats screen shows.
type statsView struct {
	Stats      *service.ProgressStats
	Completion int
	Solved     entities.ProblemStats // solved sheet problems by difficulty
	Totals     entities.ProblemStats
	Week       []service.DayActivity
	Best       service.BestDay
}

func renderStats(v statsView) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your progress"))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(v.Solved.Total, v.Totals.Total, 20)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ Sheet: %d / %d (%d%%)", v.Solved.Total, v.Totals.Total, v.Completion)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🟢 Easy %d/%d · 🟠 Medium %d/%d · 🔴 Hard %d/%d",
		v.Solved.Easy, v.Totals.Easy,
		v.Solved.Medium, v.Totals.Medium,
		v.Solved.Hard, v.Totals.Hard,
	)))
	sb.WriteString("\n\n")

	s := v.Stats
	sb.WriteString(md(fmt.Sprintf("🔥 Current streak: %d", s.Streak)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🏆 Longest streak: %d", s.LongestStreak)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📅 Active days: %d", s.ActiveDays)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🧮 Solved overall: %d (attempted %d, bookmarked %d)", s.Solved, s.Attempted, s.Bookmarked)))
	sb.WriteString("\n")
	if v.Best.Count > 0 {
		sb.WriteString(md(fmt.Sprintf("⭐ Best day: %s with %d", v.Best.Date, v.Best.Count)))
		sb.WriteString("\n")
	}

	if len(v.Week) > 0 {
		sb.WriteString("\n")
		sb.WriteString(pre(renderWeek(v.Week)))
	}

	return sb.String()
}

func renderWeek(days []service.DayActivity) string {
	var labels, counts []string
	for _, d := range days {
		labels = append(labels, fmt.Sprintf("%-3s", d.Label))
		counts = append(counts, fmt.Sprintf("%-3d", d.Count))
	}
	return strings.TrimRight(strings.Join(labels, " "), " ") + "\n" + strings.TrimRight(strings.Join(counts, " "), " ")
}

// renderHeatmap prints the weeks as columns, oldest on the left.
func renderHeatmap(weeks [][]entities.DayCell, stats *service.ProgressStats) string {
	var grid strings.Builder
	for row := 0; row < 7; row++ {
		for _, week := range weeks {
			if row < len(week) {
				grid.WriteString(heatGlyphs[entities.HeatLevel(week[row].Count)])
			} else {
				grid.WriteString(" ")
			}
		}
		if row < 6 {
			grid.WriteString("\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("🗓 Activity, last %d weeks", len(weeks))))
	sb.WriteString("\n")
	sb.WriteString(pre(strings.TrimRight(grid.String(), " ")))
	sb.WriteString("\n")
	sb.WriteString(md("less " + strings.Join(heatGlyphs[:], " ") + " more"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🔥 %d day streak · 🏆 longest %d · 📅 %d active days · %d solves",
		stats.Streak, stats.LongestStreak, stats.ActiveDays, stats.TotalSolves)))
	return sb.String()
}

func renderCalendar(year int, month time.Month, cells []entities.MonthCell, today string) string {
	var grid strings.Builder
	grid.WriteString("Mo  Tu  We  Th  Fr  Sa  Su\n")

	active, solves := 0, 0
	for i, c := range cells {
		switch {
		case c.Placeholder():
			grid.WriteString("   ")
		case c.Date == today:
			grid.WriteString(fmt.Sprintf("%2d<", c.Day))
		case c.Active:
			grid.WriteString(fmt.Sprintf("%2d*", c.Day))
		default:
			grid.WriteString(fmt.Sprintf("%2d ", c.Day))
		}
		if c.Active {
			active++
			solves += c.Count
		}

		if i%7 == 6 {
			grid.WriteString("\n")
		} else {
			grid.WriteString(" ")
		}
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("📆 %s %d", month, year)))
	sb.WriteString("\n")
	sb.WriteString(pre(strings.TrimRight(grid.String(), " \n")))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("* active day · < today · %d active days, %d solves", active, solves)))
	return sb.String()
}

func renderTopics(topics []service.TopicProgress) string {
	width := 0
	for _, t := range topics {
		width = max(width, len([]rune(t.Topic)))
	}

	var grid strings.Builder
	for _, t := range topics {
		pad := width - len([]rune(t.Topic))
		grid.WriteString(t.Topic)
		grid.WriteString(strings.Repeat(" ", pad))
		grid.WriteString(fmt.Sprintf(" %s %d/%d %d%%\n", buildProgressBar(t.Solved, t.Total, 10), t.Solved, t.Total, t.Percentage))
	}

	var sb strings.Builder
	sb.WriteString(bold("🧭 Progress by topic"))
	sb.WriteString("\n")
	sb.WriteString(pre(strings.TrimRight(grid.String(), "\n")))
	return sb.String()
}

func renderProfile(res *service.SyncResult) string {
	p := res.Profile
	info := p.Info

	var sb strings.Builder
	sb.WriteString(bold("👤 Codeforces · " + info.Handle))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Rating %d (max %d) · %s", info.Rating, info.MaxRating, info.Rank)))
	sb.WriteString("\n\n")

	st := p.Stats
	sb.WriteString(md(fmt.Sprintf("✅ %d problems solved in %d submissions", st.SolvedProblems, st.TotalSubmissions)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🟢 Easy %d · 🟠 Medium %d · 🔴 Hard %d",
		st.SolvedByDifficulty.Easy, st.SolvedByDifficulty.Medium, st.SolvedByDifficulty.Hard)))
	sb.WriteString("\n")

	if topics := topCounts(st.TopicDistribution, 5); topics != "" {
		sb.WriteString(md("🏷 Top topics: " + topics))
		sb.WriteString("\n")
	}
	if langs := topCounts(st.LanguageDistribution, 3); langs != "" {
		sb.WriteString(md("💻 Languages: " + langs))
		sb.WriteString("\n")
	}
	if ratings := ratingLine(st.RatingDistribution); ratings != "" {
		sb.WriteString(md("📈 By rating: " + ratings))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch res.Merged {
	case 0:
		sb.WriteString(italic("No new problems to merge into your progress."))
	case 1:
		sb.WriteString(italic("Merged 1 new solved problem into your progress."))
	default:
		sb.WriteString(italic(fmt.Sprintf("Merged %d new solved problems into your progress.", res.Merged)))
	}
	return sb.String()
}

// topCounts lists the n largest entries of counts, ties by key.
func topCounts(counts map[string]int, n int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

func ratingLine(dist map[int]int) string {
	ratings := make([]int, 0, len(dist))
	for r := range dist {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)

	parts := make([]string, 0, len(ratings))
	for _, r := range ratings {
		parts = append(parts, fmt.Sprintf("%d: %d", r, dist[r]))
	}
	return strings.Join(parts, ", ")
}

func renderContests(contests []entities.Contest, now time.Time) string {
	if len(contests) == 0 {
		return md(msgNoContests)
	}

	var sb strings.Builder
	sb.WriteString(bold("🏁 Upcoming contests"))
	sb.WriteString("\n")

	for _, c := range contests {
		sb.WriteString("\n")
		if c.Status(now) == entities.ContestLive {
			sb.WriteString(md("🟢 LIVE now · ends in " + formatCountdown(entities.TimeUntil(c.End(), now))))
		} else {
			sb.WriteString(md("⏳ in " + formatCountdown(entities.TimeUntil(c.StartTime, now))))
		}
		sb.WriteString("\n")
		sb.WriteString(link(c.Name, c.URL))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s · %s · %s",
			c.Platform,
			c.StartTime.In(now.Location()).Format("Mon 02 Jan 15:04"),
			entities.FormatDuration(c.DurationMinutes),
		)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatCountdown(c entities.Countdown) string {
	switch {
	case c.Days > 0:
		return fmt.Sprintf("%dd %dh", c.Days, c.Hours)
	case c.Hours > 0:
		return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
	case c.Minutes > 0:
		return fmt.Sprintf("%dm", c.Minutes)
	default:
		return "under a minute"
	}
}

func renderTasks(tasks []entities.AdminTask, withIDs bool) string {
	if len(tasks) == 0 {
		return md(msgNoTasks)
	}

	var sb strings.Builder
	sb.WriteString(bold("📌 Daily tasks"))
	sb.WriteString("\n")

	for _, t := range tasks {
		sb.WriteString("\n")
		sb.WriteString(link(t.ProblemName, t.ProblemLink))
		meta := string(t.Difficulty) + " · " + string(t.Platform)
		if t.Topic != "" {
			meta += " · " + t.Topic
		}
		sb.WriteString(md(" · " + meta))
		sb.WriteString("\n")
		sb.WriteString(md("added " + t.DateAdded.Format("02 Jan 2006")))
		if t.Notes != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(t.Notes))
		}
		if withIDs {
			sb.WriteString("\n")
			sb.WriteString("`" + t.ID + "`")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderTaskAdded(t *entities.AdminTask) string {
	return md("📌 Task published: ") + link(t.ProblemName, t.ProblemLink) + "\n" + "`" + t.ID + "`"
}

func renderTaskUpdated(t *entities.AdminTask) string {
	s := md("✏️ Task updated: ") + link(t.ProblemName, t.ProblemLink) +
		md(" · "+string(t.Difficulty)+" · "+string(t.Platform))
	if t.Notes != "" {
		s += "\n" + italic(t.Notes)
	}
	return s
}

func renderReminder(r entities.StreakReminder) string {
	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("🔥 Your %d day streak ends tonight", r.CurrentStreak)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("You have %d problems solved so far. One more today keeps the streak going.", r.SolvedTotal)))
	return sb.String()
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := current * length / total
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

