package assets

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirdav1d/geosapiens-challenge/internal/repository"
	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

// AssetsService is the application surface the handler delegates to.
type AssetsService interface {
	Search(q *ListQuery) (models.AssetsPage, error)
	Create(req models.AssetRequest) (*models.Asset, error)
	Update(id int64, req models.AssetRequest) (*models.Asset, error)
	Delete(id int64) error
}

type AssetHandler struct {
	service AssetsService
	logger  *zap.Logger
	clock   Clock
}

func NewAssetHandler(service AssetsService, logger *zap.Logger, clock Clock) *AssetHandler {
	return &AssetHandler{
		service: service,
		logger:  logger,
		clock:   clock,
	}
}

func RegisterRoutes(router *gin.Engine, r *repository.Repository, logger *zap.Logger) {
	service := NewAssetService(NewRepository(r))
	handler := NewAssetHandler(service, logger, time.Now)
	handler.RegisterRoutes(router)
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets", h.ListAssets)
	router.POST("/assets", h.CreateAsset)
	router.PUT("/assets/:id", h.UpdateAsset)
	router.DELETE("/assets/:id", h.RemoveAsset)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	query, err := ParseListQuery(ListParams{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("q"),
		Page:     c.Query("page"),
		Size:     c.Query("size"),
		Sort:     c.QueryArray("sort"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.service.Search(query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeInvalidBody(c)
		return
	}

	if findings := ValidateAssetRequest(req, h.clock); len(findings) > 0 {
		h.writeError(c, apperrors.NewValidation(findings))
		return
	}

	asset, err := h.service.Create(req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeInvalidBody(c)
		return
	}

	if findings := ValidateAssetRequest(req, h.clock); len(findings) > 0 {
		h.writeError(c, apperrors.NewValidation(findings))
		return
	}

	asset, err := h.service.Update(id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) RemoveAsset(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AssetHandler) bindID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(c, apperrors.NewInvalidParameterValue("id", "id must be a positive integer", raw))
		return 0, false
	}

	return id, true
}
