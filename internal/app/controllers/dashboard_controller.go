package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
)

// DashboardController handles institution dashboard statistics
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns aggregate statistics for the caller's institution
// @Summary Dashboard statistics
// @Description Returns learner, asset, book and capitation totals for the caller's institution
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Statistics retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	stats, err := c.dashboardService.GetStats(ctx, institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
