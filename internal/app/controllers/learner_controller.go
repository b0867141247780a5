package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// LearnerController handles learner operations
type LearnerController struct {
	learnerService services.LearnerService
}

// NewLearnerController creates a new LearnerController
func NewLearnerController(learnerService services.LearnerService) *LearnerController {
	return &LearnerController{
		learnerService: learnerService,
	}
}

// CreateLearner admits a learner to the caller's institution
// @Summary Admit a learner
// @Description Registers a new learner under the caller's institution
// @Tags learners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLearnerRequest true "Learner information"
// @Success 201 {object} dto.APIResponse{data=dto.LearnerResponse} "Learner admitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 409 {object} dto.ErrorResponse "UPI already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners [post]
func (c *LearnerController) CreateLearner(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var req dto.CreateLearnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	learner, err := c.learnerService.CreateLearner(ctx, institutionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromLearner(learner)))
}

// ListLearners lists learners with search and filters
// @Summary List learners
// @Description Returns learners of the caller's institution, filtered and paginated
// @Tags learners
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against name, UPI and course"
// @Param programType query string false "Program type filter (ECDE, VOCATIONAL or all)"
// @Param course query string false "Course filter"
// @Param class query string false "Class filter"
// @Param gender query string false "Gender filter"
// @Param status query string false "Status filter"
// @Param admissionYear query string false "Admission year filter"
// @Param ageFrom query int false "Minimum age (inclusive)"
// @Param ageTo query int false "Maximum age (inclusive)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.LearnerListResponse} "Learners retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners [get]
func (c *LearnerController) ListLearners(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var filter dto.LearnerFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	learners, pagination, err := c.learnerService.ListLearners(ctx, institutionID, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.LearnerListResponse{
		Learners:   make([]dto.LearnerResponse, 0, len(learners)),
		Pagination: pagination,
	}
	for _, learner := range learners {
		response.Learners = append(response.Learners, dto.FromLearner(learner))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// GetLearnerByID returns a single learner
// @Summary Get a learner
// @Description Returns a single learner by their ID
// @Tags learners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Learner ID"
// @Success 200 {object} dto.APIResponse{data=dto.LearnerResponse} "Learner retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid learner ID"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{id} [get]
func (c *LearnerController) GetLearnerByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid learner ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	learner, err := c.learnerService.GetLearnerByID(ctx, institutionID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLearner(learner)))
}

// UpdateLearner updates a learner's record
// @Summary Update a learner
// @Description Updates a learner's descriptive, guardian and status fields
// @Tags learners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Learner ID"
// @Param request body dto.UpdateLearnerRequest true "Learner fields"
// @Success 200 {object} dto.APIResponse{data=dto.LearnerResponse} "Learner updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Failure 409 {object} dto.ErrorResponse "Learner is recorded as deceased"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{id} [put]
func (c *LearnerController) UpdateLearner(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid learner ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateLearnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	learner, err := c.learnerService.UpdateLearner(ctx, institutionID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromLearner(learner)))
}

// DeleteLearner removes a learner's record
// @Summary Delete a learner
// @Description Removes a learner's record. Learners with a deceased record cannot be deleted.
// @Tags learners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Learner ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Learner deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid learner ID"
// @Failure 404 {object} dto.ErrorResponse "Learner not found"
// @Failure 409 {object} dto.ErrorResponse "Learner is recorded as deceased"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/{id} [delete]
func (c *LearnerController) DeleteLearner(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid learner ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	if err := c.learnerService.DeleteLearner(ctx, institutionID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Learner deleted"}))
}

// AdmissionReport summarizes admissions per class for a year
// @Summary Admission report
// @Description Returns learner admission counts grouped by class for the given year
// @Tags learners
// @Produce json
// @Security BearerAuth
// @Param year query int false "Admission year (default: current year)"
// @Success 200 {object} dto.APIResponse{data=dto.AdmissionReportResponse} "Report generated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /learners/reports/admissions [get]
func (c *LearnerController) AdmissionReport(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	year := time.Now().Year()
	if yearParam := ctx.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil || parsed < 2000 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").
				WithField("year")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = parsed
	}

	report, err := c.learnerService.AdmissionReport(ctx, institutionID, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}
