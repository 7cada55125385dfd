package wishlist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/response"
	"storefront-be/internal/utils"
)

type Response struct {
	Products []product.Summary `json:"products"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Get(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	products, err := h.service.Get(c.Request.Context(), userID)
	h.reply(c, products, err, "")
}

func (h *Handler) Add(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	code := c.Param("code")

	products, err := h.service.AddProduct(c.Request.Context(), userID, code)
	h.reply(c, products, err, code)
}

func (h *Handler) Remove(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	code := c.Param("code")

	products, err := h.service.RemoveProduct(c.Request.Context(), userID, code)
	h.reply(c, products, err, code)
}

func (h *Handler) reply(c *gin.Context, products []*product.Product, err error, code string) {
	switch {
	case err == nil:
		response.JSON(c, http.StatusOK, Response{Products: product.ToSummaries(products)})
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product.code_not_found", code)
	default:
		logger.FromCtx(c.Request.Context()).Error("wishlist request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
	}
}
