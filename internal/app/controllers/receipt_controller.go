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

// ReceiptController handles capitation receipt operations
type ReceiptController struct {
	receiptService services.ReceiptService
}

// NewReceiptController creates a new ReceiptController
func NewReceiptController(receiptService services.ReceiptService) *ReceiptController {
	return &ReceiptController{
		receiptService: receiptService,
	}
}

// UploadReceipt records a capitation receipt with its scanned document
// @Summary Upload a receipt
// @Description Records a capitation receipt and stores its scanned document. Accepts PDF, JPG, JPEG and PNG files.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param receiptNumber formData string true "Receipt number"
// @Param amount formData number true "Amount received"
// @Param receivedDate formData string true "Date received (YYYY-MM-DD)"
// @Param academicYear formData string true "Academic year"
// @Param term formData string true "Term (TERM_1, TERM_2 or TERM_3)"
// @Param description formData string false "Description"
// @Param file formData file true "Scanned receipt document"
// @Success 201 {object} dto.APIResponse{data=dto.ReceiptResponse} "Receipt uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unsupported file format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 409 {object} dto.ErrorResponse "Receipt number already exists"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /receipts [post]
func (c *ReceiptController) UploadReceipt(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)
	userID, _ := middleware.GetUserID(ctx)

	var req dto.UploadReceiptRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	receipt, err := c.receiptService.UploadReceipt(ctx, institutionID, userID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromReceipt(receipt)))
}

// ListReceipts lists receipts with search and filters
// @Summary List receipts
// @Description Returns capitation receipts of the caller's institution, filtered and paginated
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against receipt number and description"
// @Param academicYear query string false "Academic year filter"
// @Param term query string false "Term filter"
// @Param status query string false "Status filter (PENDING, VERIFIED or all)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ReceiptListResponse} "Receipts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /receipts [get]
func (c *ReceiptController) ListReceipts(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var filter dto.ReceiptFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	receipts, pagination, err := c.receiptService.ListReceipts(ctx, institutionID, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ReceiptListResponse{
		Receipts:   make([]dto.ReceiptResponse, 0, len(receipts)),
		Pagination: pagination,
	}
	for _, receipt := range receipts {
		response.Receipts = append(response.Receipts, dto.FromReceipt(receipt))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// ListCountyReceipts lists receipts across all institutions
// @Summary List county receipts
// @Description Returns capitation receipts of every institution for county level review. Restricted to county administrators.
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against receipt number and description"
// @Param academicYear query string false "Academic year filter"
// @Param term query string false "Term filter"
// @Param status query string false "Status filter (PENDING, VERIFIED or all)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ReceiptListResponse} "Receipts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "County administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /county/receipts [get]
func (c *ReceiptController) ListCountyReceipts(ctx *gin.Context) {
	var filter dto.ReceiptFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	receipts, pagination, err := c.receiptService.ListCountyReceipts(ctx, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ReceiptListResponse{
		Receipts:   make([]dto.ReceiptResponse, 0, len(receipts)),
		Pagination: pagination,
	}
	for _, receipt := range receipts {
		response.Receipts = append(response.Receipts, dto.FromReceipt(receipt))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// GetReceiptByID returns a single receipt
// @Summary Get a receipt
// @Description Returns a single capitation receipt by its ID
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReceiptResponse} "Receipt retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid receipt ID"
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /receipts/{id} [get]
func (c *ReceiptController) GetReceiptByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid receipt ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	receipt, err := c.receiptService.GetReceiptByID(ctx, institutionID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromReceipt(receipt)))
}

// VerifyReceipt marks a pending receipt as verified
// @Summary Verify a receipt
// @Description Marks a pending capitation receipt as verified. Restricted to county administrators.
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReceiptResponse} "Receipt verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid receipt ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "County administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Receipt not found or already verified"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /receipts/{id}/verify [patch]
func (c *ReceiptController) VerifyReceipt(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid receipt ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	receipt, err := c.receiptService.VerifyReceipt(ctx, id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromReceipt(receipt)))
}

// DeleteReceipt removes a receipt and its stored document
// @Summary Delete a receipt
// @Description Removes a capitation receipt record and its stored document
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Receipt ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Receipt deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid receipt ID"
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /receipts/{id} [delete]
func (c *ReceiptController) DeleteReceipt(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid receipt ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	if err := c.receiptService.DeleteReceipt(ctx, institutionID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Receipt deleted"}))
}
