package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
)

// InstitutionController handles institution operations
type InstitutionController struct {
	institutionService services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService services.InstitutionService) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
	}
}

// SetupInstitution registers the caller's institution
// @Summary Set up an institution
// @Description Registers a new institution and binds the caller as its administrator
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Registration number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/setup [post]
func (c *InstitutionController) SetupInstitution(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	institution, err := c.institutionService.SetupInstitution(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromInstitution(institution)))
}

// GetAllInstitutions lists all registered institutions
// @Summary List institutions
// @Description Returns all registered institutions ordered by name
// @Tags institutions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionListResponse} "Institutions retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) GetAllInstitutions(ctx *gin.Context) {
	institutions, err := c.institutionService.GetAllInstitutions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.InstitutionListResponse{
		Institutions: make([]dto.InstitutionResponse, 0, len(institutions)),
	}
	for _, institution := range institutions {
		response.Institutions = append(response.Institutions, dto.FromInstitution(institution))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetInstitutionByID returns a single institution
// @Summary Get an institution
// @Description Returns a single institution by its ID
// @Tags institutions
// @Produce json
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitutionByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institution, err := c.institutionService.GetInstitutionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInstitution(institution)))
}

// UpdateInstitution updates the caller's institution
// @Summary Update an institution
// @Description Updates contact and descriptive fields of an institution
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.UpdateInstitutionRequest true "Institution fields"
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution does not belong to caller"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [put]
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, ok := middleware.GetInstitutionID(ctx)
	if !ok || institutionID != id {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You can only update your own institution")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	institution, err := c.institutionService.UpdateInstitution(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInstitution(institution)))
}
