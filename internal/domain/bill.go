package domain

import "time"

type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusPaid     BillStatus = "paid"
	BillStatusOverdue  BillStatus = "overdue"
	BillStatusUpcoming BillStatus = "upcoming"
)

// Bill is a building-level expense record. It is read-mostly here and feeds
// the performance aggregation.
type Bill struct {
	ID          int32      `json:"id"`
	BuildingID  int32      `json:"building_id"`
	Title       string     `json:"title"`
	AmountCents int32      `json:"amount_cents"`
	DueDate     time.Time  `json:"due_date"`
	Status      BillStatus `json:"status"`
	PaidDate    *time.Time `json:"paid_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsOverdue is a read-time classification. It never mutates the stored
// status: a pending bill past due reads as overdue while staying pending.
func (b *Bill) IsOverdue(ref time.Time) bool {
	return b.Status == BillStatusPending && b.DueDate.Before(ref)
}

// EffectiveStatus returns the status as dashboards should render it,
// applying the read-time overdue classification.
func (b *Bill) EffectiveStatus(ref time.Time) BillStatus {
	if b.IsOverdue(ref) {
		return BillStatusOverdue
	}
	return b.Status
}
