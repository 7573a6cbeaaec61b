package service

import (
	"context"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
)

type ComplaintService interface {
	Create(ctx context.Context, actor access.Actor, apartmentID int32, title, description string, category domain.ComplaintCategory, priority domain.ComplaintPriority) (*domain.Complaint, error)
	Get(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error)
	ListMine(ctx context.Context, actor access.Actor) ([]domain.Complaint, error)
	ListByBuilding(ctx context.Context, actor access.Actor, buildingID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error)

	Start(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error)
	ManagerMarkResolved(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error)
	RenterConfirmResolution(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error)
	RenterDirectResolve(ctx context.Context, actor access.Actor, complaintID int32) (*domain.Complaint, error)
	Delete(ctx context.Context, actor access.Actor, complaintID int32) error
}

type PaymentService interface {
	Get(ctx context.Context, actor access.Actor, paymentID int32) (*domain.Payment, error)
	ListMine(ctx context.Context, actor access.Actor, month string) ([]domain.Payment, error)
	ListAwaitingVerification(ctx context.Context, actor access.Actor, buildingID int32) ([]domain.Payment, error)

	SubmitClaim(ctx context.Context, actor access.Actor, paymentID int32, method, reference, channel string) (*domain.PaymentConfirmation, error)
	Verify(ctx context.Context, actor access.Actor, paymentID int32) (*domain.PaymentConfirmation, error)
	Reject(ctx context.Context, actor access.Actor, paymentID int32, reason string) (*domain.PaymentConfirmation, error)
	// BulkVerify verifies each id still awaiting a decision, skips terminal
	// ones, and returns the count actually transitioned. It is not atomic
	// across the batch; a store error aborts the remainder.
	BulkVerify(ctx context.Context, actor access.Actor, paymentIDs []int32) (int, error)
}

type UserService interface {
	GetProfile(ctx context.Context, actor access.Actor) (*domain.User, error)
}

type PerformanceService interface {
	GetBuildingPerformance(ctx context.Context, actor access.Actor, buildingID int32, month string) (*domain.PerformanceStats, error)
	GetRentSummary(ctx context.Context, actor access.Actor, buildingID int32, month string) (*domain.RentSummary, error)
}
