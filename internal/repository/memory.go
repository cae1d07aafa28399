package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventhub-be/internal/entities"
)

// memoryUserRepository keeps users in process. Email is unique, mirroring
// the users.email index created for MongoDB.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entities.User
}

// NewMemoryUserRepository creates an in-process user store (STORE_DRIVER=memory)
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{byEmail: make(map[string]entities.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateKey
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) UpdateProvider(ctx context.Context, email, provider string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	user.Provider = provider
	user.UpdatedAt = updatedAt
	r.byEmail[email] = user
	return nil
}

// memoryEventRepository keeps events in insertion order
type memoryEventRepository struct {
	mu     sync.RWMutex
	order  []primitive.ObjectID
	events map[primitive.ObjectID]entities.Event
}

// NewMemoryEventRepository creates an in-process event store (STORE_DRIVER=memory)
func NewMemoryEventRepository() EventRepository {
	return &memoryEventRepository{events: make(map[primitive.ObjectID]entities.Event)}
}

func (r *memoryEventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, exists := r.events[event.ID]; exists {
		return ErrDuplicateKey
	}
	r.events[event.ID] = *event
	r.order = append(r.order, event.ID)
	return nil
}

func (r *memoryEventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (r *memoryEventRepository) Find(ctx context.Context, filter EventFilter) ([]entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.Search)
	events := make([]entities.Event, 0, len(r.order))
	for _, id := range r.order {
		event := r.events[id]
		if filter.Category != "" && event.Category != filter.Category {
			continue
		}
		if needle != "" && !matchesSearch(event, needle) {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func matchesSearch(event entities.Event, needle string) bool {
	for _, text := range []string{event.Title, event.ShortDescription, event.FullDescription} {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

func (r *memoryEventRepository) Update(ctx context.Context, id primitive.ObjectID, fields entities.EventFields, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return ErrNotFound
	}
	event.EventFields = fields
	event.UpdatedAt = updatedAt
	r.events[id] = event
	return nil
}

func (r *memoryEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryEventRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, id := range r.order {
		category := r.events[id].Category
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories, nil
}
