package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusPartial PaymentStatus = "partial"
)

type ConfirmationStatus string

const (
	// pending_verification and pending_review are input-channel aliases;
	// both mean "awaiting manager decision" everywhere downstream.
	ConfirmationStatusPendingVerification ConfirmationStatus = "pending_verification"
	ConfirmationStatusPendingReview       ConfirmationStatus = "pending_review"
	ConfirmationStatusVerified            ConfirmationStatus = "verified"
	ConfirmationStatusRejected            ConfirmationStatus = "rejected"
)

// Payment is one renter's rent obligation for one calendar month.
// (apartment, renter, month) is a natural key; month is 'YYYY-MM'.
type Payment struct {
	ID          int32         `json:"id"`
	ApartmentID int32         `json:"apartment_id"`
	BuildingID  int32         `json:"building_id"` // populated via apartment join
	RenterID    int32         `json:"renter_id"`
	Month       string        `json:"month"`
	AmountCents int32         `json:"amount_cents"`
	DueDate     time.Time     `json:"due_date"`
	Method      string        `json:"payment_method"`
	Reference   string        `json:"transaction_id"`
	Status      PaymentStatus `json:"status"`
	PaidAt      *time.Time    `json:"paid_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Confirmation *PaymentConfirmation `json:"confirmation,omitempty"`
}

// PaymentConfirmation is a renter-submitted claim that a payment was made,
// pending a manager decision. At most one row exists per payment; a rejected
// claim is replaced by a new submission, never flipped back.
type PaymentConfirmation struct {
	ID          int32              `json:"id"`
	PaymentID   int32              `json:"payment_id"`
	Status      ConfirmationStatus `json:"status"`
	Method      string             `json:"method"`
	Reference   string             `json:"reference"`
	Notes       string             `json:"notes"`
	VerifiedAt  *time.Time         `json:"verified_at"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// IsAwaitingDecision collapses the two submission-channel aliases into the
// single non-terminal state the state machine operates on.
func (pc *PaymentConfirmation) IsAwaitingDecision() bool {
	return pc.Status == ConfirmationStatusPendingVerification ||
		pc.Status == ConfirmationStatusPendingReview
}

func (pc *PaymentConfirmation) IsTerminal() bool {
	return pc.Status == ConfirmationStatusVerified || pc.Status == ConfirmationStatusRejected
}

// IsCollected reports whether the payment counts toward collected rent:
// the payment is paid and its confirmation, if any, has been verified.
func (p *Payment) IsCollected() bool {
	if p.Status != PaymentStatusPaid {
		return false
	}
	if p.Confirmation != nil && p.Confirmation.Status != ConfirmationStatusVerified {
		return false
	}
	return true
}
