package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventhub-be/internal/logger"
	"eventhub-be/internal/models"
	"eventhub-be/internal/service"
)

type EventController struct {
	eventService service.EventService
	log          logger.Logger
}

func NewEventController(eventService service.EventService, log logger.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		log:          log,
	}
}

// ListEvents handles GET /api/events?search=&category=
func (ec *EventController) ListEvents(c *gin.Context) {
	query := models.EventQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	events, err := ec.eventService.ListEvents(c.Request.Context(), query)
	if err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /api/events/:id
func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /api/events
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	event, err := ec.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateEventResponse{
		Message: "Event created successfully",
		Event:   event,
	})
}

// UpdateEvent handles PUT /api/events/:id - replaces every mutable field
func (ec *EventController) UpdateEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	if err := ec.eventService.UpdateEvent(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Event updated successfully"})
}

// DeleteEvent handles DELETE /api/events/:id
func (ec *EventController) DeleteEvent(c *gin.Context) {
	if err := ec.eventService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Event deleted successfully"})
}

// ListCategories handles GET /api/categories
func (ec *EventController) ListCategories(c *gin.Context) {
	categories, err := ec.eventService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
