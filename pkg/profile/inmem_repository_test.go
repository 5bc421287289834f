package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemProfileRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemProfileRepository()
	ctx := context.Background()

	id := uuid.New()
	created, err := repo.CreateProfile(ctx, CreateProfileParams{
		ID: id, Email: "alice@example.com", Name: "Alice", IsStudent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsStudent)
	assert.False(t, got.IsAdmin)
}

func TestInMemProfileRepository_CreateDuplicate(t *testing.T) {
	repo := NewInMemProfileRepository()
	ctx := context.Background()

	params := CreateProfileParams{ID: uuid.New(), Email: "bob@example.com", Name: "Bob"}

	_, err := repo.CreateProfile(ctx, params)
	require.NoError(t, err)

	_, err = repo.CreateProfile(ctx, params)
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestInMemProfileRepository_Delete(t *testing.T) {
	repo := NewInMemProfileRepository()
	ctx := context.Background()

	id := uuid.New()
	_, err := repo.CreateProfile(ctx, CreateProfileParams{ID: id, Email: "carol@example.com", Name: "Carol"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProfile(ctx, id))

	_, err = repo.GetProfile(ctx, id)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	assert.ErrorIs(t, repo.DeleteProfile(ctx, id), ErrProfileNotFound)
}

func TestNewProfileRepository_Factory(t *testing.T) {
	repo, err := NewProfileRepository("inmem", RepositoryConfig{})
	require.NoError(t, err)
	assert.IsType(t, &InMemProfileRepository{}, repo)

	_, err = NewProfileRepository("postgres", RepositoryConfig{})
	assert.Error(t, err)

	_, err = NewProfileRepository("cassandra", RepositoryConfig{})
	assert.Error(t, err)
}
