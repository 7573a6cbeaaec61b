package repository

import (
	"context"
	"time"

	"proptrack-backend/internal/domain"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	// GetByID returns a KindNotFound domain error for an unknown id.
	GetByID(ctx context.Context, id int32) (*domain.Complaint, error)
	// SetInProgress moves a pending complaint to in_progress in one
	// conditional statement. It returns (nil, nil) when the guard matched no
	// row, i.e. the complaint was no longer pending.
	SetInProgress(ctx context.Context, id int32) (*domain.Complaint, error)
	// ApplyResolution executes the guard/update pair for the given path as a
	// single conditional statement, so concurrent manager/renter actions
	// cannot lose the escalation to resolved. It returns (nil, nil) when the
	// guard matched no row.
	ApplyResolution(ctx context.Context, id int32, path domain.ResolutionPath, now time.Time) (*domain.Complaint, error)
	Delete(ctx context.Context, id int32) error
	ListByRenter(ctx context.Context, renterID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error)
	ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error)
}

type PaymentRepository interface {
	// GetByID returns the payment with its confirmation row, if any,
	// attached. Unknown id is a KindNotFound domain error.
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	// SubmitConfirmation inserts the claim, or overwrites a terminal
	// (verified/rejected) one, in a single conditional statement. It returns
	// (nil, nil) when a non-terminal claim already exists.
	SubmitConfirmation(ctx context.Context, confirmation *domain.PaymentConfirmation) (*domain.PaymentConfirmation, error)
	// VerifyConfirmation transitions an awaiting-decision confirmation to
	// verified and marks the payment paid in the same transaction. It
	// returns (nil, nil) when the confirmation is missing or terminal.
	VerifyConfirmation(ctx context.Context, paymentID int32, now time.Time) (*domain.PaymentConfirmation, error)
	// RejectConfirmation transitions an awaiting-decision confirmation to
	// rejected, storing the reason in notes. Same (nil, nil) contract.
	RejectConfirmation(ctx context.Context, paymentID int32, reason string, now time.Time) (*domain.PaymentConfirmation, error)
	ListByRenter(ctx context.Context, renterID int32, month string) ([]domain.Payment, error)
	ListByBuilding(ctx context.Context, buildingID int32, month string) ([]domain.Payment, error)
	ListAwaitingVerification(ctx context.Context, buildingID int32) ([]domain.Payment, error)
}

type BillRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Bill, error)
	ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.BillStatus) ([]domain.Bill, error)
	// ListDueInMonth filters on the calendar (year, month) of due_date.
	ListDueInMonth(ctx context.Context, buildingID int32, year int, month time.Month) ([]domain.Bill, error)
}

type PropertyRepository interface {
	GetBuilding(ctx context.Context, id int32) (*domain.Building, error)
	GetApartment(ctx context.Context, id int32) (*domain.Apartment, error)
	CountRenters(ctx context.Context, buildingID int32) (int, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
