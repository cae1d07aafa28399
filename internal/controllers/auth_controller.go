package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventhub-be/internal/logger"
	"eventhub-be/internal/models"
	"eventhub-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
	log         logger.Logger
}

func NewAuthController(authService service.AuthService, log logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Google handles POST /api/auth/google - persists the profile of a user who
// completed Google sign-in on the frontend
func (ac *AuthController) Google(c *gin.Context) {
	var req models.ProviderAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	response, err := ac.authService.ProviderSignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
