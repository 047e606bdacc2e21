package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-api/internal/models"
	"fintrack-api/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "register", err)
		return
	}

	result, err := ac.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		User:        models.NewUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "login", err)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		User:        models.NewUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, err := ac.authService.Me(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, "me", err)
		return
	}

	c.JSON(http.StatusOK, models.MeResponse{User: models.NewUserResponse(user)})
}
