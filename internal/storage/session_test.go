package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminSessionStorage(t *testing.T) {
	s := NewAdminSessionStorage()
	assert.False(t, s.Exists(10))

	s.Store(10, time.Now())
	assert.True(t, s.Exists(10))
	assert.False(t, s.Exists(11))

	s.Delete(10)
	assert.False(t, s.Exists(10))

	// Deleting an unknown chat is a no-op.
	s.Delete(11)
}
