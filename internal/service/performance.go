package service

import (
	"context"
	"time"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type performanceService struct {
	billRepo      repository.BillRepository
	complaintRepo repository.ComplaintRepository
	paymentRepo   repository.PaymentRepository
	propertyRepo  repository.PropertyRepository

	// now is swappable so the read-time overdue classification is testable.
	now func() time.Time
}

func NewPerformanceService(
	billRepo repository.BillRepository,
	complaintRepo repository.ComplaintRepository,
	paymentRepo repository.PaymentRepository,
	propertyRepo repository.PropertyRepository,
) PerformanceService {
	return &performanceService{
		billRepo:      billRepo,
		complaintRepo: complaintRepo,
		paymentRepo:   paymentRepo,
		propertyRepo:  propertyRepo,
		now:           time.Now,
	}
}

// GetBuildingPerformance recomputes the dashboard stats from the current
// entity snapshot on every call. Nothing is cached; identical snapshots
// yield identical stats.
func (s *performanceService) GetBuildingPerformance(ctx context.Context, actor access.Actor, buildingID int32, month string) (*domain.PerformanceStats, error) {
	logger.EnterMethod("performanceService.GetBuildingPerformance", "actorID", actor.ID, "buildingID", buildingID, "month", month)

	building, year, m, err := s.authorize(ctx, actor, buildingID, month)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetBuildingPerformance", err, "buildingID", buildingID)
		return nil, err
	}

	bills, err := s.billRepo.ListDueInMonth(ctx, building.ID, year, m)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetBuildingPerformance", err, "buildingID", buildingID)
		return nil, err
	}
	complaints, err := s.complaintRepo.ListByBuilding(ctx, building.ID, nil)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetBuildingPerformance", err, "buildingID", buildingID)
		return nil, err
	}
	payments, err := s.paymentRepo.ListByBuilding(ctx, building.ID, month)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetBuildingPerformance", err, "buildingID", buildingID)
		return nil, err
	}
	renterCount, err := s.propertyRepo.CountRenters(ctx, building.ID)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetBuildingPerformance", err, "buildingID", buildingID)
		return nil, err
	}

	stats := domain.ComputePerformance(building.ID, month, bills, complaints, payments, renterCount, s.now())

	logger.ExitMethod("performanceService.GetBuildingPerformance", "buildingID", buildingID, "score", stats.OverallScore)
	return stats, nil
}

func (s *performanceService) GetRentSummary(ctx context.Context, actor access.Actor, buildingID int32, month string) (*domain.RentSummary, error) {
	logger.EnterMethod("performanceService.GetRentSummary", "actorID", actor.ID, "buildingID", buildingID, "month", month)

	building, _, _, err := s.authorize(ctx, actor, buildingID, month)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetRentSummary", err, "buildingID", buildingID)
		return nil, err
	}

	payments, err := s.paymentRepo.ListByBuilding(ctx, building.ID, month)
	if err != nil {
		logger.ExitMethodWithError("performanceService.GetRentSummary", err, "buildingID", buildingID)
		return nil, err
	}

	summary := domain.ComputeRentSummary(building.ID, month, payments)

	logger.ExitMethod("performanceService.GetRentSummary", "buildingID", buildingID, "collectionPct", summary.CollectionPercentage)
	return summary, nil
}

// authorize resolves the building, checks aggregate-read access, and parses
// the 'YYYY-MM' month key.
func (s *performanceService) authorize(ctx context.Context, actor access.Actor, buildingID int32, month string) (*domain.Building, int, time.Month, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, 0, 0, domain.ValidationError("month must be formatted YYYY-MM: %q", month)
	}

	building, err := s.propertyRepo.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := access.RequireAggregateRead(actor, building); err != nil {
		return nil, 0, 0, err
	}
	return building, t.Year(), t.Month(), nil
}
