package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	s := NewUserService(repo, zap.NewNop())

	require.NoError(t, s.EnsureUser(ctx, 1, 10))
	require.NoError(t, s.EnsureUser(ctx, 1, 11))

	u, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(11), u.ChatID)

	_, err = s.GetUser(ctx, 2)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}
