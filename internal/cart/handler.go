package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/logger"
	"storefront-be/internal/response"
	"storefront-be/internal/utils"
)

type AddRequest struct {
	ProductCode string `json:"productCode"`
	Quantity    *int   `json:"quantity"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func sessionKey(c *gin.Context) string {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	return SessionKey(userID)
}

func (h *Handler) Get(c *gin.Context) {
	cart, err := h.service.Get(c.Request.Context(), sessionKey(c))
	h.reply(c, cart, err, "")
}

func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, bindErrorKey(err))
		return
	}

	req.ProductCode = strings.TrimSpace(req.ProductCode)
	if req.ProductCode == "" {
		response.Error(c, http.StatusBadRequest, "cart.invalid_product_code")
		return
	}
	if req.Quantity == nil {
		response.Error(c, http.StatusBadRequest, "cart.invalid_quantity")
		return
	}

	cart, err := h.service.Add(c.Request.Context(), sessionKey(c), req.ProductCode, *req.Quantity)
	h.reply(c, cart, err, req.ProductCode)
}

func (h *Handler) Remove(c *gin.Context) {
	code := c.Param("code")

	cart, err := h.service.Remove(c.Request.Context(), sessionKey(c), code)
	h.reply(c, cart, err, code)
}

func (h *Handler) Clear(c *gin.Context) {
	cart, err := h.service.Clear(c.Request.Context(), sessionKey(c))
	h.reply(c, cart, err, "")
}

func bindErrorKey(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "productCode":
			return "cart.invalid_product_code"
		case "quantity":
			return "cart.invalid_quantity"
		}
	}
	return "cart.invalid_payload"
}

func (h *Handler) reply(c *gin.Context, cart *Cart, err error, code string) {
	switch {
	case err == nil:
		response.JSON(c, http.StatusOK, ToResponse(cart))
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product.code_not_found", code)
	default:
		logger.FromCtx(c.Request.Context()).Error("cart request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
	}
}
