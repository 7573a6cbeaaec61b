package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	propertyRepo repository.PropertyRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	propertyRepo repository.PropertyRepository,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		propertyRepo: propertyRepo,
	}
}

func (s *paymentService) Get(ctx context.Context, actor access.Actor, paymentID int32) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.Get", "actorID", actor.ID, "paymentID", paymentID)

	payment, building, err := s.load(ctx, paymentID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.Get", err, "paymentID", paymentID)
		return nil, err
	}
	if err := access.RequireRecordRead(actor, payment.RenterID, building); err != nil {
		logger.ExitMethodWithError("paymentService.Get", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentService.Get", "paymentID", paymentID)
	return payment, nil
}

func (s *paymentService) ListMine(ctx context.Context, actor access.Actor, month string) ([]domain.Payment, error) {
	logger.EnterMethod("paymentService.ListMine", "actorID", actor.ID, "month", month)

	if actor.Role != domain.RoleRenter {
		return nil, domain.ForbiddenError("only renters have a personal payment list")
	}
	payments, err := s.paymentRepo.ListByRenter(ctx, actor.ID, month)
	if err != nil {
		logger.ExitMethodWithError("paymentService.ListMine", err, "actorID", actor.ID)
		return nil, err
	}

	logger.ExitMethod("paymentService.ListMine", "actorID", actor.ID, "count", len(payments))
	return payments, nil
}

func (s *paymentService) ListAwaitingVerification(ctx context.Context, actor access.Actor, buildingID int32) ([]domain.Payment, error) {
	logger.EnterMethod("paymentService.ListAwaitingVerification", "actorID", actor.ID, "buildingID", buildingID)

	building, err := s.propertyRepo.GetBuilding(ctx, buildingID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.ListAwaitingVerification", err, "buildingID", buildingID)
		return nil, err
	}
	if err := access.RequireBuildingManager(actor, building); err != nil {
		logger.ExitMethodWithError("paymentService.ListAwaitingVerification", err, "buildingID", buildingID)
		return nil, err
	}

	payments, err := s.paymentRepo.ListAwaitingVerification(ctx, buildingID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.ListAwaitingVerification", err, "buildingID", buildingID)
		return nil, err
	}

	logger.ExitMethod("paymentService.ListAwaitingVerification", "buildingID", buildingID, "count", len(payments))
	return payments, nil
}

// SubmitClaim records the renter's assertion that the payment was made. The
// channel selects the stored alias status; both aliases behave identically
// downstream. A rejected claim is replaced by a fresh submission; a claim
// still awaiting a decision is a conflict.
func (s *paymentService) SubmitClaim(ctx context.Context, actor access.Actor, paymentID int32, method, reference, channel string) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentService.SubmitClaim", "actorID", actor.ID, "paymentID", paymentID)

	if method == "" {
		return nil, domain.ValidationError("payment method is required")
	}

	payment, _, err := s.load(ctx, paymentID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.SubmitClaim", err, "paymentID", paymentID)
		return nil, err
	}
	if err := access.RequireOwningRenter(actor, payment.RenterID); err != nil {
		logger.ExitMethodWithError("paymentService.SubmitClaim", err, "paymentID", paymentID)
		return nil, err
	}

	if reference == "" {
		reference = uuid.New().String()
	}
	status := domain.ConfirmationStatusPendingVerification
	if channel == "review" {
		status = domain.ConfirmationStatusPendingReview
	}

	confirmation, err := s.paymentRepo.SubmitConfirmation(ctx, &domain.PaymentConfirmation{
		PaymentID:   paymentID,
		Status:      status,
		Method:      method,
		Reference:   reference,
		SubmittedAt: time.Now(),
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.SubmitClaim", err, "paymentID", paymentID)
		return nil, err
	}
	if confirmation == nil {
		err := domain.ConflictError("a claim for payment %d is already awaiting verification", paymentID)
		logger.ExitMethodWithError("paymentService.SubmitClaim", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentService.SubmitClaim", "confirmationID", confirmation.ID)
	return confirmation, nil
}

func (s *paymentService) Verify(ctx context.Context, actor access.Actor, paymentID int32) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentService.Verify", "actorID", actor.ID, "paymentID", paymentID)

	payment, building, err := s.load(ctx, paymentID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.Verify", err, "paymentID", paymentID)
		return nil, err
	}
	if err := access.RequireBuildingManager(actor, building); err != nil {
		logger.ExitMethodWithError("paymentService.Verify", err, "paymentID", paymentID)
		return nil, err
	}
	if err := requireAwaitingDecision(payment); err != nil {
		logger.ExitMethodWithError("paymentService.Verify", err, "paymentID", paymentID)
		return nil, err
	}

	confirmation, err := s.paymentRepo.VerifyConfirmation(ctx, paymentID, time.Now())
	if err != nil {
		logger.ExitMethodWithError("paymentService.Verify", err, "paymentID", paymentID)
		return nil, err
	}
	if confirmation == nil {
		err := domain.InvalidTransitionError("payment %d claim is no longer awaiting a decision", paymentID)
		logger.ExitMethodWithError("paymentService.Verify", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentService.Verify", "confirmationID", confirmation.ID)
	return confirmation, nil
}

func (s *paymentService) Reject(ctx context.Context, actor access.Actor, paymentID int32, reason string) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentService.Reject", "actorID", actor.ID, "paymentID", paymentID)

	if reason == "" {
		return nil, domain.ValidationError("rejection reason is required")
	}

	payment, building, err := s.load(ctx, paymentID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.Reject", err, "paymentID", paymentID)
		return nil, err
	}
	if err := access.RequireBuildingManager(actor, building); err != nil {
		logger.ExitMethodWithError("paymentService.Reject", err, "paymentID", paymentID)
		return nil, err
	}
	if err := requireAwaitingDecision(payment); err != nil {
		logger.ExitMethodWithError("paymentService.Reject", err, "paymentID", paymentID)
		return nil, err
	}

	confirmation, err := s.paymentRepo.RejectConfirmation(ctx, paymentID, reason, time.Now())
	if err != nil {
		logger.ExitMethodWithError("paymentService.Reject", err, "paymentID", paymentID)
		return nil, err
	}
	if confirmation == nil {
		err := domain.InvalidTransitionError("payment %d claim is no longer awaiting a decision", paymentID)
		logger.ExitMethodWithError("paymentService.Reject", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentService.Reject", "confirmationID", confirmation.ID)
	return confirmation, nil
}

// BulkVerify walks the batch in order. Each item's verify is all-or-nothing
// on its own; there is no atomicity across items, and a store failure stops
// the walk with the count applied so far.
func (s *paymentService) BulkVerify(ctx context.Context, actor access.Actor, paymentIDs []int32) (int, error) {
	logger.EnterMethod("paymentService.BulkVerify", "actorID", actor.ID, "count", len(paymentIDs))

	verified := 0
	for _, paymentID := range paymentIDs {
		payment, building, err := s.load(ctx, paymentID)
		if err != nil {
			logger.ExitMethodWithError("paymentService.BulkVerify", err, "paymentID", paymentID, "verified", verified)
			return verified, err
		}
		if err := access.RequireBuildingManager(actor, building); err != nil {
			logger.ExitMethodWithError("paymentService.BulkVerify", err, "paymentID", paymentID, "verified", verified)
			return verified, err
		}
		if payment.Confirmation == nil || payment.Confirmation.IsTerminal() {
			continue
		}

		confirmation, err := s.paymentRepo.VerifyConfirmation(ctx, paymentID, time.Now())
		if err != nil {
			logger.ExitMethodWithError("paymentService.BulkVerify", err, "paymentID", paymentID, "verified", verified)
			return verified, err
		}
		if confirmation != nil {
			verified++
		}
	}

	logger.ExitMethod("paymentService.BulkVerify", "verified", verified)
	return verified, nil
}

func requireAwaitingDecision(payment *domain.Payment) error {
	if payment.Confirmation == nil {
		return domain.InvalidTransitionError("payment %d has no claim to decide", payment.ID)
	}
	if payment.Confirmation.IsTerminal() {
		return domain.InvalidTransitionError("payment %d claim is already %s", payment.ID, payment.Confirmation.Status)
	}
	return nil
}

func (s *paymentService) load(ctx context.Context, paymentID int32) (*domain.Payment, *domain.Building, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	building, err := s.propertyRepo.GetBuilding(ctx, payment.BuildingID)
	if err != nil {
		return nil, nil, err
	}
	return payment, building, nil
}
