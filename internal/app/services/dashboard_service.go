package services

import (
	"context"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
)

// learnerCounter provides headcount figures for the dashboard.
type learnerCounter interface {
	CountByInstitution(ctx context.Context, institutionID int64) (total, active, male, female int, err error)
}

// assetCounter provides asset counts for the dashboard.
type assetCounter interface {
	CountByInstitution(ctx context.Context, institutionID int64) (int, error)
}

// bookCounter provides book copy counts for the dashboard.
type bookCounter interface {
	CountByInstitution(ctx context.Context, institutionID int64) (int, error)
}

// receiptCounter provides receipt counts and verified totals for the
// dashboard.
type receiptCounter interface {
	CountByInstitution(ctx context.Context, institutionID int64) (pending, verified int, totalVerified float64, err error)
}

// DashboardService defines the interface for dashboard aggregation
type DashboardService interface {
	GetStats(ctx context.Context, institutionID int64) (*dto.DashboardStatsResponse, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	learners learnerCounter
	assets   assetCounter
	books    bookCounter
	receipts receiptCounter
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(learners learnerCounter, assets assetCounter, books bookCounter, receipts receiptCounter) DashboardService {
	return &dashboardServiceImpl{
		learners: learners,
		assets:   assets,
		books:    books,
		receipts: receipts,
	}
}

// GetStats aggregates the institution's dashboard figures
func (s *dashboardServiceImpl) GetStats(ctx context.Context, institutionID int64) (*dto.DashboardStatsResponse, error) {
	total, active, male, female, err := s.learners.CountByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	assetCount, err := s.assets.CountByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	bookCount, err := s.books.CountByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	pending, verified, totalCapitation, err := s.receipts.CountByInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalLearners:    total,
		ActiveLearners:   active,
		MaleLearners:     male,
		FemaleLearners:   female,
		TotalAssets:      assetCount,
		TotalBooks:       bookCount,
		PendingReceipts:  pending,
		VerifiedReceipts: verified,
		TotalCapitation:  totalCapitation,
	}, nil
}
