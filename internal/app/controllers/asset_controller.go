package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// AssetController handles infrastructure asset operations
type AssetController struct {
	assetService services.AssetService
}

// NewAssetController creates a new AssetController
func NewAssetController(assetService services.AssetService) *AssetController {
	return &AssetController{
		assetService: assetService,
	}
}

// CreateAsset registers an infrastructure asset
// @Summary Register an asset
// @Description Records a new infrastructure asset under the caller's institution
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssetRequest true "Asset information"
// @Success 201 {object} dto.APIResponse{data=dto.AssetResponse} "Asset registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assets [post]
func (c *AssetController) CreateAsset(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var req dto.CreateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	asset, err := c.assetService.CreateAsset(ctx, institutionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromAsset(asset)))
}

// ListAssets lists infrastructure assets with search and filters
// @Summary List assets
// @Description Returns infrastructure assets of the caller's institution, filtered and paginated
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against name and asset type"
// @Param assetType query string false "Asset type filter"
// @Param classification query string false "Classification filter"
// @Param condition query string false "Condition filter"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AssetListResponse} "Assets retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assets [get]
func (c *AssetController) ListAssets(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var filter dto.AssetFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	assets, pagination, err := c.assetService.ListAssets(ctx, institutionID, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AssetListResponse{
		Assets:     make([]dto.AssetResponse, 0, len(assets)),
		Pagination: pagination,
	}
	for _, asset := range assets {
		response.Assets = append(response.Assets, dto.FromAsset(asset))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// GetAssetByID returns a single asset
// @Summary Get an asset
// @Description Returns a single infrastructure asset by its ID
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssetResponse} "Asset retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid asset ID"
// @Failure 404 {object} dto.ErrorResponse "Asset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assets/{id} [get]
func (c *AssetController) GetAssetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid asset ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	asset, err := c.assetService.GetAssetByID(ctx, institutionID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAsset(asset)))
}

// UpdateAsset updates an asset's record
// @Summary Update an asset
// @Description Updates an infrastructure asset's fields
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param request body dto.UpdateAssetRequest true "Asset fields"
// @Success 200 {object} dto.APIResponse{data=dto.AssetResponse} "Asset updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Asset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assets/{id} [put]
func (c *AssetController) UpdateAsset(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid asset ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	asset, err := c.assetService.UpdateAsset(ctx, institutionID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAsset(asset)))
}

// DeleteAsset removes an asset's record
// @Summary Delete an asset
// @Description Removes an infrastructure asset record
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Asset deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid asset ID"
// @Failure 404 {object} dto.ErrorResponse "Asset not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assets/{id} [delete]
func (c *AssetController) DeleteAsset(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid asset ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	if err := c.assetService.DeleteAsset(ctx, institutionID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Asset deleted"}))
}
