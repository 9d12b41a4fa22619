package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/storage"
)

var (
	ErrUnauthorized  = errors.New("admin login required")
	ErrAdminDisabled = errors.New("admin area is disabled")
	ErrWrongPassword = errors.New("wrong admin password")
	ErrInvalidTask   = errors.New("invalid admin task")
)

// Authenticator checks an admin password.
type Authenticator interface {
	Enabled() bool
	Authenticate(password string) bool
}

// BcryptAuthenticator compares passwords against a configured bcrypt hash.
// An empty hash disables authentication entirely.
type BcryptAuthenticator struct {
	hash []byte
}

func NewBcryptAuthenticator(hash string) *BcryptAuthenticator {
	return &BcryptAuthenticator{hash: []byte(strings.TrimSpace(hash))}
}

func (a *BcryptAuthenticator) Enabled() bool {
	return len(a.hash) > 0
}

func (a *BcryptAuthenticator) Authenticate(password string) bool {
	if !a.Enabled() {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
}

// NewTask is the admin input for a daily task.
type NewTask struct {
	ProblemLink string
	ProblemName string
	Topic       string
	Difficulty  entities.Difficulty
	Platform    entities.Platform
	Notes       string
}

// AdminService manages admin sessions and the daily task list.
type AdminService struct {
	auth     Authenticator
	sessions *storage.AdminSessionStorage
	tasks    AdminTaskRepository
	now      Clock
	logger   *zap.Logger
}

func NewAdminService(
	auth Authenticator,
	sessions *storage.AdminSessionStorage,
	tasks AdminTaskRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		auth:     auth,
		sessions: sessions,
		tasks:    tasks,
		now:      time.Now,
		logger:   logger,
	}
}

// Login starts an admin session for chatID.
func (s *AdminService) Login(chatID int64, password string) error {
	if !s.auth.Enabled() {
		return ErrAdminDisabled
	}
	if !s.auth.Authenticate(password) {
		s.logger.Warn("admin login rejected", zap.Int64("chat_id", chatID))
		return ErrWrongPassword
	}

	s.sessions.Store(chatID, s.now())
	s.logger.Info("admin logged in", zap.Int64("chat_id", chatID))
	return nil
}

func (s *AdminService) Logout(chatID int64) {
	s.sessions.Delete(chatID)
}

func (s *AdminService) IsAdmin(chatID int64) bool {
	return s.sessions.Exists(chatID)
}

// ListTasks returns the daily tasks, newest first. Listing is public.
func (s *AdminService) ListTasks(ctx context.Context) ([]entities.AdminTask, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// AddTask publishes a new daily task.
func (s *AdminService) AddTask(ctx context.Context, chatID int64, in NewTask) (*entities.AdminTask, error) {
	if !s.IsAdmin(chatID) {
		return nil, ErrUnauthorized
	}
	if err := validateTask(in.ProblemLink, in.ProblemName, in.Difficulty, in.Platform); err != nil {
		return nil, err
	}

	task := &entities.AdminTask{
		ID:          uuid.NewString(),
		ProblemLink: in.ProblemLink,
		ProblemName: in.ProblemName,
		Topic:       in.Topic,
		Difficulty:  in.Difficulty,
		Platform:    in.Platform,
		DateAdded:   s.now(),
		Notes:       in.Notes,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to an existing task.
func (s *AdminService) UpdateTask(ctx context.Context, chatID int64, id string, patch entities.AdminTaskPatch) (*entities.AdminTask, error) {
	if !s.IsAdmin(chatID) {
		return nil, ErrUnauthorized
	}

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Apply(patch)
	if err = validateTask(task.ProblemLink, task.ProblemName, task.Difficulty, task.Platform); err != nil {
		return nil, err
	}

	if err = s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *AdminService) DeleteTask(ctx context.Context, chatID int64, id string) error {
	if !s.IsAdmin(chatID) {
		return ErrUnauthorized
	}
	return s.tasks.Delete(ctx, id)
}

func validateTask(link, name string, difficulty entities.Difficulty, platform entities.Platform) error {
	switch {
	case strings.TrimSpace(link) == "":
		return fmt.Errorf("%w: problem link is required", ErrInvalidTask)
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: problem name is required", ErrInvalidTask)
	case !difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidTask, difficulty)
	case !platform.Valid():
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidTask, platform)
	}
	return nil
}
