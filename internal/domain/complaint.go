package domain

import "time"

type ComplaintStatus string

// The persisted status enum stays 3-valued; "awaiting confirmation" is
// always derived from the two flags, never stored.
const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

type ComplaintCategory string

const (
	ComplaintCategoryPlumbing   ComplaintCategory = "plumbing"
	ComplaintCategoryElectrical ComplaintCategory = "electrical"
	ComplaintCategoryStructural ComplaintCategory = "structural"
	ComplaintCategoryAppliance  ComplaintCategory = "appliance"
	ComplaintCategoryGeneral    ComplaintCategory = "general"
)

type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
	ComplaintPriorityUrgent ComplaintPriority = "urgent"
)

// ResolutionPath selects which guard/update pair a resolution attempt uses.
// All three converge on the same terminal state.
type ResolutionPath string

const (
	ResolutionPathManagerMark   ResolutionPath = "manager_mark"
	ResolutionPathRenterConfirm ResolutionPath = "renter_confirm"
	ResolutionPathRenterDirect  ResolutionPath = "renter_direct"
)

type Complaint struct {
	ID          int32             `json:"id"`
	ApartmentID int32             `json:"apartment_id"`
	BuildingID  int32             `json:"building_id"` // populated via apartment join
	RenterID    int32             `json:"renter_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    ComplaintCategory `json:"category"`
	Priority    ComplaintPriority `json:"priority"`

	Status                ComplaintStatus `json:"status"`
	ManagerMarkedResolved bool            `json:"manager_marked_resolved"`
	RenterMarkedResolved  bool            `json:"renter_marked_resolved"`
	ResolvedAt            *time.Time      `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NeedsRenterConfirmation reports whether the manager has marked the issue
// fixed but the renter has not yet confirmed.
func (c *Complaint) NeedsRenterConfirmation() bool {
	return c.ManagerMarkedResolved && !c.RenterMarkedResolved
}

func (c *Complaint) IsResolved() bool {
	return c.Status == ComplaintStatusResolved
}

type ComplaintDisplayStatus string

const (
	ComplaintDisplayPending              ComplaintDisplayStatus = "pending"
	ComplaintDisplayInProgress           ComplaintDisplayStatus = "in_progress"
	ComplaintDisplayAwaitingConfirmation ComplaintDisplayStatus = "awaiting_confirmation"
	ComplaintDisplayResolved             ComplaintDisplayStatus = "resolved"
)

// DisplayStatus computes the 4-valued UI-facing status from the persisted
// 3-valued status plus the confirmation flag pair.
func (c *Complaint) DisplayStatus() ComplaintDisplayStatus {
	switch {
	case c.Status == ComplaintStatusResolved:
		return ComplaintDisplayResolved
	case c.NeedsRenterConfirmation():
		return ComplaintDisplayAwaitingConfirmation
	case c.Status == ComplaintStatusInProgress:
		return ComplaintDisplayInProgress
	default:
		return ComplaintDisplayPending
	}
}

func ValidComplaintCategory(c ComplaintCategory) bool {
	switch c {
	case ComplaintCategoryPlumbing, ComplaintCategoryElectrical,
		ComplaintCategoryStructural, ComplaintCategoryAppliance, ComplaintCategoryGeneral:
		return true
	}
	return false
}

func ValidComplaintPriority(p ComplaintPriority) bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityUrgent:
		return true
	}
	return false
}
