package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser registers the user on first contact and keeps the chat ID current.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) error {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID))
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	return s.repository.GetByID(ctx, userID)
}
