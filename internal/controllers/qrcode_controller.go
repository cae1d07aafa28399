package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"eventhub-be/internal/logger"
	"eventhub-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	eventService service.EventService
	frontendURL  string
	log          logger.Logger
}

func NewQRCodeController(eventService service.EventService, frontendURL string, log logger.Logger) *QRCodeController {
	return &QRCodeController{
		eventService: eventService,
		frontendURL:  frontendURL,
		log:          log,
	}
}

// EventQRCode handles GET /api/events/:id/qrcode - a PNG QR code linking to
// the event page on the frontend
func (qc *QRCodeController) EventQRCode(c *gin.Context) {
	event, err := qc.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, qc.log, err)
		return
	}

	eventURL := qc.frontendURL + "/events/" + event.ID.Hex()

	pngData, err := qrcode.Encode(eventURL, qrcode.Medium, qrCodeSize)
	if err != nil {
		qc.log.Error("Failed to generate QR code", map[string]interface{}{
			"event_id": event.ID.Hex(),
			"error":    err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=event-"+event.ID.Hex()+".png")
	c.Data(http.StatusOK, "image/png", pngData)
}
