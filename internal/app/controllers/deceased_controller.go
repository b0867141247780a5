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

// DeceasedController handles deceased learner record operations
type DeceasedController struct {
	deceasedService services.DeceasedService
}

// NewDeceasedController creates a new DeceasedController
func NewDeceasedController(deceasedService services.DeceasedService) *DeceasedController {
	return &DeceasedController{
		deceasedService: deceasedService,
	}
}

// CreateRecord reports a learner's death
// @Summary Report a deceased learner
// @Description Records a learner's death and marks the learner as deceased
// @Tags deceased
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDeceasedRecordRequest true "Deceased record information"
// @Success 201 {object} dto.APIResponse{data=dto.DeceasedRecordResponse} "Record created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Failure 409 {object} dto.ErrorResponse "Learner is already recorded as deceased"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deceased [post]
func (c *DeceasedController) CreateRecord(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var req dto.CreateDeceasedRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	record, err := c.deceasedService.CreateRecord(ctx, institutionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromDeceasedRecord(record)))
}

// ListRecords lists deceased records with search and filters
// @Summary List deceased records
// @Description Returns deceased learner records of the caller's institution, filtered and paginated
// @Tags deceased
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against learner name, UPI and cause of death"
// @Param status query string false "Record status filter (PENDING, CONFIRMED or all)"
// @Param year query string false "Year of death filter"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.DeceasedRecordListResponse} "Records retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deceased [get]
func (c *DeceasedController) ListRecords(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var filter dto.DeceasedFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	records, pagination, err := c.deceasedService.ListRecords(ctx, institutionID, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.DeceasedRecordListResponse{
		Records:    make([]dto.DeceasedRecordResponse, 0, len(records)),
		Pagination: pagination,
	}
	for _, record := range records {
		response.Records = append(response.Records, dto.FromDeceasedRecord(record))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// GetRecordByID returns a single deceased record
// @Summary Get a deceased record
// @Description Returns a single deceased learner record by its ID
// @Tags deceased
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeceasedRecordResponse} "Record retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deceased/{id} [get]
func (c *DeceasedController) GetRecordByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	record, err := c.deceasedService.GetRecordByID(ctx, institutionID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDeceasedRecord(record)))
}
