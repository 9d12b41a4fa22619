package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

var errBoom = errors.New("boom")

// fixedNow is Tuesday 10 March 2026, mid-afternoon UTC.
var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type memProgressRepo struct {
	mu       sync.Mutex
	docs     map[int64][]byte
	saves    int
	failSave bool
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{docs: make(map[int64][]byte)}
}

func (r *memProgressRepo) Get(_ context.Context, userID int64) (*entities.ProgressState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.docs[userID]
	if !ok {
		return nil, entities.ErrStateNotFound
	}
	var state entities.ProgressState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, entities.ErrMalformedState
	}
	return &state, nil
}

func (r *memProgressRepo) Save(_ context.Context, userID int64, state *entities.ProgressState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSave {
		return errBoom
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	r.docs[userID] = raw
	r.saves++
	return nil
}

func (r *memProgressRepo) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, userID)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[int64]*entities.User
}

func newMemUserRepo(users ...*entities.User) *memUserRepo {
	r := &memUserRepo{users: make(map[int64]*entities.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Save(_ context.Context, user *entities.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[user.ID]; ok {
		existing.ChatID = user.ChatID
		return false, nil
	}
	u := *user
	r.users[user.ID] = &u
	return true, nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) SetCodeforcesHandle(_ context.Context, userID int64, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.CodeforcesHandle = handle
	return nil
}

func (r *memUserRepo) ListAll(_ context.Context) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.User
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memTaskRepo struct {
	tasks map[string]entities.AdminTask
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]entities.AdminTask)}
}

func (r *memTaskRepo) List(context.Context) ([]entities.AdminTask, error) {
	var out []entities.AdminTask
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	return out, nil
}

func (r *memTaskRepo) Get(_ context.Context, id string) (*entities.AdminTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return &t, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *entities.AdminTask) error {
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, task *entities.AdminTask) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// fakeCatalog is a tiny three-day sheet.
type fakeCatalog struct {
	days []entities.DayPlan
}

func intPtr(v int) *int { return &v }

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{days: []entities.DayPlan{
		{Day: 1, Topic: "Arrays", Problems: []entities.Problem{
			{ID: "1a", Name: "Two Sum", Platform: entities.PlatformLeetCode, Difficulty: entities.DifficultyEasy},
			{ID: "1b", Name: "Best Time to Buy and Sell Stock", Platform: entities.PlatformLeetCode, Difficulty: entities.DifficultyEasy},
			{ID: "1c", Name: "Maximum Subarray", Platform: entities.PlatformLeetCode, Difficulty: entities.DifficultyMedium},
		}},
		{Day: 2, Topic: "Math", Problems: []entities.Problem{
			{ID: "2a", Name: "Watermelon", Platform: entities.PlatformCodeforces, Difficulty: entities.DifficultyEasy, Rating: intPtr(800)},
			{ID: "2b", Name: "Way Too Long Words", Platform: entities.PlatformCodeforces, Difficulty: entities.DifficultyEasy, Rating: intPtr(850)},
			{ID: "2c", Name: "Team", Platform: entities.PlatformCodeforces, Difficulty: entities.DifficultyMedium, Rating: intPtr(1000)},
		}},
		{Day: 3, Topic: "Arrays", Problems: []entities.Problem{
			{ID: "3a", Name: "Trapping Rain Water", Platform: entities.PlatformLeetCode, Difficulty: entities.DifficultyHard},
		}},
	}}
}

func (c *fakeCatalog) Days() []entities.DayPlan { return c.days }

func (c *fakeCatalog) GetDay(day int) (*entities.DayPlan, error) {
	if day < 1 || day > len(c.days) {
		return nil, errors.New("day not found")
	}
	return &c.days[day-1], nil
}

func (c *fakeCatalog) Problems() []entities.SheetProblem {
	var out []entities.SheetProblem
	for _, d := range c.days {
		for _, p := range d.Problems {
			out = append(out, entities.SheetProblem{Problem: p, Day: d.Day})
		}
	}
	return out
}

func (c *fakeCatalog) Total() int { return len(c.Problems()) }

type fakeFetcher struct {
	mu      sync.Mutex
	profile *codeforces.Profile
	err     error
	calls   []string
	block   chan struct{} // when set, FetchProfile waits on it or on ctx
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, handle string) (*codeforces.Profile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, handle)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.profile, f.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.StreakReminder
	err  error
}

func (n *recordingNotifier) SendStreakReminder(_ int64, r entities.StreakReminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, r)
	return nil
}
