package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchRegistryLastRequestWins(t *testing.T) {
	r := NewFetchRegistry()

	first, firstCtx := r.Begin(context.Background(), 1)
	second, secondCtx := r.Begin(context.Background(), 1)

	assert.Error(t, firstCtx.Err(), "superseded fetch is cancelled")
	assert.NoError(t, secondCtx.Err())

	assert.False(t, r.Current(1, first))
	assert.True(t, r.Current(1, second))

	assert.False(t, r.Finish(1, first))
	assert.True(t, r.Current(1, second), "finishing a stale fetch keeps the newer one")

	assert.True(t, r.Finish(1, second))
	assert.Error(t, secondCtx.Err())
	assert.False(t, r.Current(1, second))
}

func TestFetchRegistryUsersAreIndependent(t *testing.T) {
	r := NewFetchRegistry()

	a, aCtx := r.Begin(context.Background(), 1)
	b, _ := r.Begin(context.Background(), 2)

	assert.NoError(t, aCtx.Err())
	assert.True(t, r.Current(1, a))
	assert.True(t, r.Current(2, b))
	assert.NotEqual(t, a, b)
}

func TestFetchRegistryParentCancellation(t *testing.T) {
	r := NewFetchRegistry()
	parent, cancel := context.WithCancel(context.Background())

	gen, ctx := r.Begin(parent, 1)
	cancel()

	assert.Error(t, ctx.Err())
	assert.True(t, r.Current(1, gen))
}
