package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/response"
)

type Handler struct {
	service  Service
	tokenTTL time.Duration
	secure   bool
}

// NewHandler builds the account handler. tokenTTL sets the access_token
// cookie lifetime; secure marks the cookie HTTPS-only.
func NewHandler(s Service, tokenTTL time.Duration, secure bool) *Handler {
	return &Handler{service: s, tokenTTL: tokenTTL, secure: secure}
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "user.invalid_payload")
		return
	}

	u, err := h.service.Register(c.Request.Context(), input)
	switch {
	case err == nil:
		response.JSON(c, http.StatusCreated, ToSummary(u))
	case errors.Is(err, ErrEmailExists):
		response.Error(c, http.StatusBadRequest, "user.email_already_used", input.Email)
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "user.invalid_payload")
	default:
		logger.FromCtx(c.Request.Context()).Error("register failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
	}
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "user.invalid_payload")
		return
	}

	token, _, err := h.service.Login(c.Request.Context(), input)
	switch {
	case err == nil:
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.secure, true)
		response.JSON(c, http.StatusOK, gin.H{"token": token})
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "user.invalid_credentials")
	default:
		logger.FromCtx(c.Request.Context()).Error("login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
	}
}
