package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/i18n"
	"storefront-be/internal/logger"
	"storefront-be/internal/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(c *gin.Context) {
	products, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	response.JSON(c, http.StatusOK, ToSummaries(products))
}

func (h *Handler) Show(c *gin.Context) {
	code := c.Param("code")

	p, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.fail(c, err, code)
		return
	}
	response.JSON(c, http.StatusOK, ToDetail(p))
}

func (h *Handler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "product.invalid_payload")
		return
	}

	p, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, input.Code)
		return
	}

	c.Header("Location", "/"+i18n.LocaleFrom(c.Request.Context())+"/products/"+p.Code)
	response.JSON(c, http.StatusCreated, ToDetail(p))
}

func (h *Handler) Update(c *gin.Context) {
	code := c.Param("code")

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "product.invalid_payload")
		return
	}

	p, err := h.service.Update(c.Request.Context(), code, input)
	if err != nil {
		if errors.Is(err, ErrCodeAlreadyUsed) && input.Code != nil {
			code = *input.Code
		}
		h.fail(c, err, code)
		return
	}
	response.JSON(c, http.StatusOK, ToDetail(p))
}

func (h *Handler) Delete(c *gin.Context) {
	code := c.Param("code")

	p, err := h.service.Delete(c.Request.Context(), code)
	if err != nil {
		h.fail(c, err, code)
		return
	}
	response.JSON(c, http.StatusOK, ToDetail(p))
}

func (h *Handler) fail(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product.code_not_found", code)
	case errors.Is(err, ErrCodeAlreadyUsed):
		response.Error(c, http.StatusBadRequest, "product.code_already_used", code)
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "product.invalid_payload")
	default:
		logger.FromCtx(c.Request.Context()).Error("product request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "server.internal_error")
	}
}
