package category

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/logger"
	"storefront-be/internal/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *Handler) List(c *gin.Context) {
	limit, okLimit := queryInt(c, "limit")
	page, okPage := queryInt(c, "page")
	if !okLimit || !okPage {
		response.Error(c, http.StatusBadRequest, "category.invalid_query")
		return
	}

	result, err := h.service.List(c.Request.Context(), ListInput{
		Filter: c.Query("filter"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("category request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
		return
	}

	response.JSON(c, http.StatusOK, result)
}
