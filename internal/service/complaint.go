package service

import (
	"context"
	"time"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	propertyRepo  repository.PropertyRepository
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	propertyRepo repository.PropertyRepository,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		propertyRepo:  propertyRepo,
	}
}

func (s *complaintService) Create(ctx context.Context, actor access.Actor, apartmentID int32, title, description string, category domain.ComplaintCategory, priority domain.ComplaintPriority) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.Create", "actorID", actor.ID, "apartmentID", apartmentID)

	if title == "" {
		return nil, domain.ValidationError("title is required")
	}
	if description == "" {
		return nil, domain.ValidationError("description is required")
	}
	if category == "" {
		category = domain.ComplaintCategoryGeneral
	}
	if !domain.ValidComplaintCategory(category) {
		return nil, domain.ValidationError("unknown category: %s", category)
	}
	if priority == "" {
		priority = domain.ComplaintPriorityMedium
	}
	if !domain.ValidComplaintPriority(priority) {
		return nil, domain.ValidationError("unknown priority: %s", priority)
	}

	apartment, err := s.propertyRepo.GetApartment(ctx, apartmentID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.Create", err, "apartmentID", apartmentID)
		return nil, err
	}
	if apartment.RenterID == nil {
		return nil, domain.ForbiddenError("apartment %d has no renter", apartmentID)
	}
	if err := access.RequireOwningRenter(actor, *apartment.RenterID); err != nil {
		logger.ExitMethodWithError("complaintService.Create", err, "actorID", actor.ID)
		return nil, err
	}

	complaint := &domain.Complaint{
		ApartmentID: apartmentID,
		BuildingID:  apartment.BuildingID,
		RenterID:    actor.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		logger.ExitMethodWithError("complaintService.Create", err, "apartmentID", apartmentID)
		return nil, err
	}

	logger.ExitMethod("complaintService.Create", "complaintID", complaint.ID)
	return complaint, nil
}

func (s *complaintService) Get(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.Get", "actorID", actor.ID, "complaintID", complaintID)

	complaint, building, err := s.load(ctx, complaintID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.Get", err, "complaintID", complaintID)
		return nil, err
	}
	if err := access.RequireRecordRead(actor, complaint.RenterID, building); err != nil {
		logger.ExitMethodWithError("complaintService.Get", err, "complaintID", complaintID)
		return nil, err
	}

	logger.ExitMethod("complaintService.Get", "complaintID", complaintID)
	return complaint, nil
}

func (s *complaintService) ListMine(ctx context.Context, actor access.Actor) ([]domain.Complaint, error) {
	logger.EnterMethod("complaintService.ListMine", "actorID", actor.ID)

	if actor.Role != domain.RoleRenter {
		return nil, domain.ForbiddenError("only renters have a personal complaint list")
	}
	complaints, err := s.complaintRepo.ListByRenter(ctx, actor.ID, nil)
	if err != nil {
		logger.ExitMethodWithError("complaintService.ListMine", err, "actorID", actor.ID)
		return nil, err
	}

	logger.ExitMethod("complaintService.ListMine", "actorID", actor.ID, "count", len(complaints))
	return complaints, nil
}

func (s *complaintService) ListByBuilding(ctx context.Context, actor access.Actor, buildingID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	logger.EnterMethod("complaintService.ListByBuilding", "actorID", actor.ID, "buildingID", buildingID)

	building, err := s.propertyRepo.GetBuilding(ctx, buildingID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.ListByBuilding", err, "buildingID", buildingID)
		return nil, err
	}
	if err := access.RequireAggregateRead(actor, building); err != nil {
		logger.ExitMethodWithError("complaintService.ListByBuilding", err, "buildingID", buildingID)
		return nil, err
	}

	complaints, err := s.complaintRepo.ListByBuilding(ctx, buildingID, statuses)
	if err != nil {
		logger.ExitMethodWithError("complaintService.ListByBuilding", err, "buildingID", buildingID)
		return nil, err
	}

	logger.ExitMethod("complaintService.ListByBuilding", "buildingID", buildingID, "count", len(complaints))
	return complaints, nil
}

// Start moves a pending complaint to in_progress. Calling it on a complaint
// already in progress or resolved is a no-op returning the current record.
func (s *complaintService) Start(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.Start", "actorID", actor.ID, "complaintID", complaintID)

	complaint, building, err := s.load(ctx, complaintID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.Start", err, "complaintID", complaintID)
		return nil, err
	}
	if err := access.RequireBuildingManager(actor, building); err != nil {
		logger.ExitMethodWithError("complaintService.Start", err, "complaintID", complaintID)
		return nil, err
	}

	if complaint.Status != domain.ComplaintStatusPending {
		logger.ExitMethod("complaintService.Start", "complaintID", complaintID, "noop", true)
		return complaint, nil
	}

	updated, err := s.complaintRepo.SetInProgress(ctx, complaintID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.Start", err, "complaintID", complaintID)
		return nil, err
	}
	if updated == nil {
		// Lost the race with another transition; the call stays a no-op.
		return s.complaintRepo.GetByID(ctx, complaintID)
	}

	logger.ExitMethod("complaintService.Start", "complaintID", complaintID, "status", updated.Status)
	return updated, nil
}

func (s *complaintService) ManagerMarkResolved(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error) {
	return s.resolve(ctx, actor, complaintID, domain.ResolutionPathManagerMark)
}

func (s *complaintService) RenterConfirmResolution(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error) {
	return s.resolve(ctx, actor, complaintID, domain.ResolutionPathRenterConfirm)
}

func (s *complaintService) RenterDirectResolve(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error) {
	return s.resolve(ctx, actor, complaintID, domain.ResolutionPathRenterDirect)
}

// resolve is the single transition function behind the three resolution
// operations. Each path pairs its own guard with its own update; all three
// converge on status=resolved with both flags set and resolved_at stamped
// exactly once.
func (s *complaintService) resolve(ctx context.Context, actor access.Actor, complaintID int32, path domain.ResolutionPath) (*domain.Complaint, error) {
	logger.EnterMethod("complaintService.resolve", "actorID", actor.ID, "complaintID", complaintID, "path", path)

	complaint, building, err := s.load(ctx, complaintID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
		return nil, err
	}

	switch path {
	case domain.ResolutionPathManagerMark:
		if err := access.RequireBuildingManager(actor, building); err != nil {
			logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
			return nil, err
		}
		if complaint.IsResolved() {
			logger.ExitMethod("complaintService.resolve", "complaintID", complaintID, "noop", true)
			return complaint, nil
		}
	case domain.ResolutionPathRenterConfirm:
		if err := access.RequireOwningRenter(actor, complaint.RenterID); err != nil {
			logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
			return nil, err
		}
		if complaint.IsResolved() {
			logger.ExitMethod("complaintService.resolve", "complaintID", complaintID, "noop", true)
			return complaint, nil
		}
		if !complaint.ManagerMarkedResolved {
			err := domain.PreconditionFailedError("manager has not marked complaint %d resolved yet", complaintID)
			logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
			return nil, err
		}
	case domain.ResolutionPathRenterDirect:
		if err := access.RequireOwningRenter(actor, complaint.RenterID); err != nil {
			logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
			return nil, err
		}
		if complaint.IsResolved() {
			err := domain.InvalidTransitionError("complaint %d is already resolved", complaintID)
			logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
			return nil, err
		}
	}

	updated, err := s.complaintRepo.ApplyResolution(ctx, complaintID, path, time.Now())
	if err != nil {
		logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
		return nil, err
	}
	if updated == nil {
		// The guard matched no row. The manager flag never unsets and the
		// renter-confirm guard only requires it, so a miss means either the
		// row vanished or a concurrent transition already reached the state
		// this path rejects.
		switch path {
		case domain.ResolutionPathRenterDirect:
			err = domain.InvalidTransitionError("complaint %d is already resolved", complaintID)
		default:
			err = domain.NotFoundError("complaint %d not found", complaintID)
		}
		logger.ExitMethodWithError("complaintService.resolve", err, "complaintID", complaintID)
		return nil, err
	}

	logger.ExitMethod("complaintService.resolve", "complaintID", complaintID, "status", updated.Status,
		"managerMarked", updated.ManagerMarkedResolved, "renterMarked", updated.RenterMarkedResolved)
	return updated, nil
}

// Delete removes the renter's own complaint at any status.
func (s *complaintService) Delete(ctx context.Context, actor access.Actor, complaintID int32) error {
	logger.EnterMethod("complaintService.Delete", "actorID", actor.ID, "complaintID", complaintID)

	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		logger.ExitMethodWithError("complaintService.Delete", err, "complaintID", complaintID)
		return err
	}
	if err := access.RequireOwningRenter(actor, complaint.RenterID); err != nil {
		logger.ExitMethodWithError("complaintService.Delete", err, "complaintID", complaintID)
		return err
	}

	if err := s.complaintRepo.Delete(ctx, complaintID); err != nil {
		logger.ExitMethodWithError("complaintService.Delete", err, "complaintID", complaintID)
		return err
	}

	logger.ExitMethod("complaintService.Delete", "complaintID", complaintID)
	return nil
}

func (s *complaintService) load(ctx context.Context, complaintID int32) (*domain.Complaint, *domain.Building, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}
	building, err := s.propertyRepo.GetBuilding(ctx, complaint.BuildingID)
	if err != nil {
		return nil, nil, err
	}
	return complaint, building, nil
}
