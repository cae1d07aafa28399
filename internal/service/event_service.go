package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventhub-be/internal/apperrors"
	"eventhub-be/internal/cache"
	"eventhub-be/internal/entities"
	"eventhub-be/internal/logger"
	"eventhub-be/internal/models"
	"eventhub-be/internal/repository"
)

// AllCategories is the category filter value that disables category filtering
const AllCategories = "all"

const categoriesCacheKey = "events:categories"

var eventMessages = validationMessages{
	"required":  "All fields are required",
	"price":     "Price must be a valid number",
	"eventdate": "Date must be a valid date",
}

// requiredEventFields are only enforced on create
var requiredEventFields = []string{"Title", "ShortDescription", "FullDescription"}

// EventService defines the interface for event catalog business logic
type EventService interface {
	ListEvents(ctx context.Context, query models.EventQuery) ([]entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	CreateEvent(ctx context.Context, req *models.EventRequest) (*entities.Event, error)
	UpdateEvent(ctx context.Context, id string, req *models.EventRequest) error
	DeleteEvent(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]string, error)
}

type eventService struct {
	repo     repository.EventRepository
	cache    cache.Cache
	cacheTTL time.Duration
	log      logger.Logger
	now      func() time.Time
}

// NewEventService creates a new event service. cacheClient may be nil, in
// which case every read goes to the store.
func NewEventService(repo repository.EventRepository, cacheClient cache.Cache, cacheTTL time.Duration, log logger.Logger) EventService {
	if log == nil {
		log = logger.Nop()
	}
	svc := &eventService{
		repo:     repo,
		cacheTTL: cacheTTL,
		log:      log.WithFields(map[string]interface{}{"component": "event_service"}),
		now:      storeNow,
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func eventCacheKey(id primitive.ObjectID) string {
	return "event:" + id.Hex()
}

// parseEventID treats a malformed id the same as an unknown one
func parseEventID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound("Event not found")
	}
	return oid, nil
}

// ListEvents returns the events matching query in no guaranteed order
func (s *eventService) ListEvents(ctx context.Context, query models.EventQuery) ([]entities.Event, error) {
	filter := repository.EventFilter{Search: query.Search, Category: query.Category}
	if filter.Category == AllCategories {
		filter.Category = ""
	}

	events, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("list events", err)
	}
	if events == nil {
		events = []entities.Event{}
	}
	return events, nil
}

// GetEvent returns one event, reading through the cache when configured
func (s *eventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	oid, err := parseEventID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached entities.Event
		if err := s.cache.GetJSON(ctx, eventCacheKey(oid), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.warnCache("read event", err)
		}
	}

	event, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Event not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find event", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, eventCacheKey(oid), event, s.cacheTTL); err != nil {
			s.warnCache("store event", err)
		}
	}
	return event, nil
}

// CreateEvent validates every field before converting any of them, then
// stores the event with both timestamps set.
func (s *eventService) CreateEvent(ctx context.Context, req *models.EventRequest) (*entities.Event, error) {
	if err := check(req, eventMessages); err != nil {
		return nil, err
	}

	fields, err := eventFields(req)
	if err != nil {
		return nil, err
	}
	if fields.ImageURL == nil {
		placeholder := entities.DefaultImageURL
		fields.ImageURL = &placeholder
	}

	now := s.now()
	event := &entities.Event{
		EventFields: fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperrors.Internal("create event", err)
	}

	s.invalidate(ctx, categoriesCacheKey)
	return event, nil
}

// UpdateEvent replaces every client-controlled field. Fields may be absent
// but must be well-formed when present.
func (s *eventService) UpdateEvent(ctx context.Context, id string, req *models.EventRequest) error {
	oid, err := parseEventID(id)
	if err != nil {
		return err
	}

	if err := check(req, eventMessages, requiredEventFields...); err != nil {
		return err
	}

	fields, err := eventFields(req)
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, oid, fields, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Event not found")
	}
	if err != nil {
		return apperrors.Internal("update event", err)
	}

	s.invalidate(ctx, eventCacheKey(oid), categoriesCacheKey)
	return nil
}

// DeleteEvent removes an event permanently
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	oid, err := parseEventID(id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Event not found")
	}
	if err != nil {
		return apperrors.Internal("delete event", err)
	}

	s.invalidate(ctx, eventCacheKey(oid), categoriesCacheKey)
	return nil
}

// ListCategories returns the distinct categories in no guaranteed order
func (s *eventService) ListCategories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		var cached []string
		if err := s.cache.GetJSON(ctx, categoriesCacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			s.warnCache("read categories", err)
		}
	}

	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, apperrors.Internal("list categories", err)
	}
	if categories == nil {
		categories = []string{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoriesCacheKey, categories, s.cacheTTL); err != nil {
			s.warnCache("store categories", err)
		}
	}
	return categories, nil
}

// eventFields converts a validated request into stored fields. Absent price,
// date and image are stored as null.
func eventFields(req *models.EventRequest) (entities.EventFields, error) {
	fields := entities.EventFields{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		Category:         req.Category,
		Location:         req.Location,
		Organizer:        req.Organizer,
	}

	if req.Price != "" {
		price, err := parsePrice(string(req.Price))
		if err != nil {
			return fields, apperrors.Validation(eventMessages["price"])
		}
		fields.Price = &price
	}

	if req.Date != "" {
		date, err := parseEventDate(req.Date)
		if err != nil {
			return fields, apperrors.Validation(eventMessages["eventdate"])
		}
		fields.Date = &date
	}

	if req.ImageURL != "" {
		imageURL := req.ImageURL
		fields.ImageURL = &imageURL
	}

	return fields, nil
}

// invalidate drops cached entries after a mutation. Failures are logged only.
func (s *eventService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.warnCache("invalidate", err)
	}
}

func (s *eventService) warnCache(op string, err error) {
	s.log.Warn("Event cache operation failed", map[string]interface{}{
		"op":    op,
		"error": err,
	})
}
