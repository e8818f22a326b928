package handler

import (
	"net/http"

	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BrandHandler handles brand requests
type BrandHandler struct {
	brandService service.BrandService
	logger       *zap.Logger
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandService service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

func (h *BrandHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), identity, &req)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *BrandHandler) List(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	brands, err := h.brandService.List(c.Request.Context(), identity)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	brand, err := h.brandService.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Update(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), identity, c.Param("id"), req.ToDomain())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Brand deleted successfully",
	})
}
