package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eventhub-be/internal/database"
	"eventhub-be/internal/entities"
)

// EventFilter narrows Find. Empty fields do not filter.
type EventFilter struct {
	Search   string // case-insensitive substring of title or descriptions
	Category string // exact category
}

// EventRepository defines the interface for event store operations.
// Find and DistinctCategories make no ordering guarantee.
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entities.Event, error)
	Find(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, fields entities.EventFields, updatedAt time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type eventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates an event repository over the events collection
func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{coll: db.Collection(database.EventsCollection)}
}

// searchFields are matched by EventFilter.Search
var searchFields = []string{"title", "shortDescription", "fullDescription"}

// BuildEventFilter translates f into a MongoDB query document. The search
// text is escaped so it always matches literally.
func BuildEventFilter(f EventFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}

	if f.Category != "" {
		filter["category"] = f.Category
	}

	return filter
}

// Create inserts event and sets its ID from the store
func (r *eventRepository) Create(ctx context.Context, event *entities.Event) error {
	result, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

// FindByID finds an event by its ObjectID
func (r *eventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entities.Event, error) {
	var event entities.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

// Find returns every event matching filter
func (r *eventRepository) Find(ctx context.Context, filter EventFilter) ([]entities.Event, error) {
	cursor, err := r.coll.Find(ctx, BuildEventFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]entities.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

type eventUpdate struct {
	entities.EventFields `bson:",inline"`
	UpdatedAt            time.Time `bson:"updatedAt"`
}

// Update replaces every client-controlled field of the event. createdAt is
// left untouched.
func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, fields entities.EventFields, updatedAt time.Time) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": eventUpdate{EventFields: fields, UpdatedAt: updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the event permanently
func (r *eventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctCategories returns the distinct non-empty category values
func (r *eventRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
