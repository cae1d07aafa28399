package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventhub-be/internal/entities"
)

func newEvent(title, short, category string) *entities.Event {
	return &entities.Event{EventFields: entities.EventFields{
		Title:            title,
		ShortDescription: short,
		FullDescription:  short + " in full",
		Category:         category,
	}}
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &entities.User{Name: "Ada", Email: "ada@example.com", Role: entities.RoleUser}
	require.NoError(t, repo.Create(ctx, user))
	assert.False(t, user.ID.IsZero())

	err := repo.Create(ctx, &entities.User{Name: "Ada 2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.FindByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, ErrNotFound, "lookup is case-sensitive")

	later := time.Now().Add(time.Hour).UTC()
	require.NoError(t, repo.UpdateProvider(ctx, "ada@example.com", "google", later))

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "google", found.Provider)
	assert.Equal(t, later, found.UpdatedAt)

	assert.ErrorIs(t, repo.UpdateProvider(ctx, "nobody@example.com", "google", later), ErrNotFound)
}

func TestMemoryUserRepository_ConcurrentCreateKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &entities.User{Email: "race@example.com"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateKey)
		}
	}
	assert.Equal(t, 1, created)
}

func TestMemoryEventRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	for _, e := range []*entities.Event{
		newEvent("Jazz Night", "Live music downtown", "Music"),
		newEvent("Tech Meetup", "Talks about JAZZ.js and more", "Tech"),
		newEvent("Food Fair", "Street food", "Food"),
		newEvent("Rock Fest", "Guitars", "Music"),
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	titles := func(events []entities.Event) []string {
		out := make([]string, 0, len(events))
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}

	all, err := repo.Find(ctx, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	jazz, err := repo.Find(ctx, EventFilter{Search: "jazz"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Jazz Night", "Tech Meetup"}, titles(jazz))

	music, err := repo.Find(ctx, EventFilter{Category: "Music"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Jazz Night", "Rock Fest"}, titles(music))

	both, err := repo.Find(ctx, EventFilter{Search: "JAZZ", Category: "Tech"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech Meetup"}, titles(both))

	none, err := repo.Find(ctx, EventFilter{Search: "opera"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryEventRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	event := newEvent("Jazz Night", "Live music", "Music")
	event.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	event.UpdatedAt = event.CreatedAt
	require.NoError(t, repo.Create(ctx, event))

	updatedAt := event.CreatedAt.Add(time.Hour)
	fields := entities.EventFields{Title: "Blues Night", Category: "Blues"}
	require.NoError(t, repo.Update(ctx, event.ID, fields, updatedAt))

	found, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, fields, found.EventFields)
	assert.Equal(t, event.CreatedAt, found.CreatedAt)
	assert.Equal(t, updatedAt, found.UpdatedAt)

	missing := primitive.NewObjectID()
	assert.ErrorIs(t, repo.Update(ctx, missing, fields, updatedAt), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, missing), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, event.ID))
	_, err = repo.FindByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEventRepository_DistinctCategories(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	for _, e := range []*entities.Event{
		newEvent("a", "a", "Music"),
		newEvent("b", "b", "Tech"),
		newEvent("c", "c", "Music"),
		newEvent("d", "d", ""),
	} {
		require.NoError(t, repo.Create(ctx, e))
	}

	categories, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Music", "Tech"}, categories)
}

func TestMemoryRepositories_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryEventRepository().Find(ctx, EventFilter{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewMemoryUserRepository().FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}
