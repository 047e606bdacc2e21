package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack-api/internal/jwt"
	"fintrack-api/internal/middleware"
	"fintrack-api/internal/service"
)

// respondError maps service errors onto status codes. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, op string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": validationErr.Details,
		})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrCategoryExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Category with this name already exists"})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, service.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id for this user"})
	case errors.Is(err, service.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	default:
		log.Printf("ERROR: %s: %v request_id=%s", op, err, middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentIdentity returns the caller attached by the auth middleware. A
// protected route reached without one answers 401.
func currentIdentity(c *gin.Context) (jwt.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return jwt.Identity{}, false
	}
	return identity, true
}

// parseID reads a positive integer path parameter. Like a numeric coercion
// it tolerates surrounding spaces and integral forms such as "1.0" or "1e2".
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, id > 0
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}
