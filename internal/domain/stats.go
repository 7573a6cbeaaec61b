package domain

import (
	"math"
	"time"
)

// PerformanceStats is the manager-performance dashboard payload for one
// building and month. Every field is derived at read time from the entity
// snapshot; nothing here is persisted.
type PerformanceStats struct {
	BuildingID int32  `json:"building_id"`
	Month      string `json:"month"`

	BillTotal         int `json:"bill_total"`
	BillPaid          int `json:"bill_paid"`
	BillOverdue       int `json:"bill_overdue"`
	ComplaintTotal    int `json:"complaint_total"`
	ComplaintResolved int `json:"complaint_resolved"`
	RenterTotal       int `json:"renter_total"`
	PaymentVerified   int `json:"payment_verified"`

	BillCompletionRate      float64 `json:"bill_completion_rate"`
	ComplaintResolutionRate float64 `json:"complaint_resolution_rate"`
	PaymentVerificationRate float64 `json:"payment_verification_rate"`
	OverallScore            int     `json:"overall_performance_score"`
}

// RentSummary is the rent-collection dashboard payload for one building and
// month.
type RentSummary struct {
	BuildingID           int32   `json:"building_id"`
	Month                string  `json:"month"`
	TotalExpectedCents   int64   `json:"total_expected_cents"`
	TotalCollectedCents  int64   `json:"total_collected_cents"`
	CollectionPercentage float64 `json:"collection_percentage"`
	PaymentsAwaiting     int     `json:"payments_awaiting_verification"`
}

// BillCompletionRate is paid / total over the bill set, 0 for an empty set.
func BillCompletionRate(bills []Bill) float64 {
	if len(bills) == 0 {
		return 0
	}
	paid := 0
	for _, b := range bills {
		if b.Status == BillStatusPaid {
			paid++
		}
	}
	return float64(paid) / float64(len(bills))
}

// ComplaintResolutionRate is resolved / total over the complaint set, 0 for
// an empty set. Only the persisted resolved status counts; a manager-only
// partial resolution does not.
func ComplaintResolutionRate(complaints []Complaint) float64 {
	if len(complaints) == 0 {
		return 0
	}
	resolved := 0
	for _, c := range complaints {
		if c.Status == ComplaintStatusResolved {
			resolved++
		}
	}
	return float64(resolved) / float64(len(complaints))
}

// PaymentVerificationRate is verified payments / renter headcount, 0 when
// the building has no renters.
func PaymentVerificationRate(payments []Payment, renterCount int) float64 {
	if renterCount == 0 {
		return 0
	}
	verified := 0
	for _, p := range payments {
		if p.Confirmation != nil && p.Confirmation.Status == ConfirmationStatusVerified {
			verified++
		}
	}
	return float64(verified) / float64(renterCount)
}

// OverallPerformanceScore is the unweighted mean of the three rates as a
// percentage, rounded to the nearest integer. Each rate arrives already
// zero-guarded, so a missing category contributes 0.
func OverallPerformanceScore(billRate, complaintRate, paymentRate float64) int {
	return int(math.Round((billRate + complaintRate + paymentRate) / 3 * 100))
}

// CollectionPercentage returns collected/expected as a percentage rounded to
// two decimals, 0 when nothing was expected.
func CollectionPercentage(totalExpectedCents, totalCollectedCents int64) float64 {
	if totalExpectedCents <= 0 {
		return 0
	}
	pct := float64(totalCollectedCents) / float64(totalExpectedCents) * 100
	return math.Round(pct*100) / 100
}

// InMonth compares on the calendar (year, month) pair in UTC, never on exact
// date equality.
func InMonth(t time.Time, year int, month time.Month) bool {
	u := t.UTC()
	return u.Year() == year && u.Month() == month
}

// BillsDueInMonth filters bills whose due date falls in the given calendar
// month.
func BillsDueInMonth(bills []Bill, year int, month time.Month) []Bill {
	out := []Bill{}
	for _, b := range bills {
		if InMonth(b.DueDate, year, month) {
			out = append(out, b)
		}
	}
	return out
}

// ComputePerformance folds a building/month entity snapshot into the
// dashboard stats. It is a pure reduction: order-independent and repeatable
// for the same snapshot.
func ComputePerformance(buildingID int32, month string, bills []Bill, complaints []Complaint, payments []Payment, renterCount int, now time.Time) *PerformanceStats {
	stats := &PerformanceStats{
		BuildingID:     buildingID,
		Month:          month,
		BillTotal:      len(bills),
		ComplaintTotal: len(complaints),
		RenterTotal:    renterCount,
	}

	for _, b := range bills {
		if b.Status == BillStatusPaid {
			stats.BillPaid++
		}
		if b.IsOverdue(now) {
			stats.BillOverdue++
		}
	}
	for _, c := range complaints {
		if c.Status == ComplaintStatusResolved {
			stats.ComplaintResolved++
		}
	}
	for _, p := range payments {
		if p.Confirmation != nil && p.Confirmation.Status == ConfirmationStatusVerified {
			stats.PaymentVerified++
		}
	}

	stats.BillCompletionRate = BillCompletionRate(bills)
	stats.ComplaintResolutionRate = ComplaintResolutionRate(complaints)
	stats.PaymentVerificationRate = PaymentVerificationRate(payments, renterCount)
	stats.OverallScore = OverallPerformanceScore(
		stats.BillCompletionRate, stats.ComplaintResolutionRate, stats.PaymentVerificationRate)
	return stats
}

// ComputeRentSummary folds a building/month payment snapshot into the rent
// collection totals. A payment counts as collected only per IsCollected.
func ComputeRentSummary(buildingID int32, month string, payments []Payment) *RentSummary {
	sum := &RentSummary{BuildingID: buildingID, Month: month}
	for _, p := range payments {
		sum.TotalExpectedCents += int64(p.AmountCents)
		if p.IsCollected() {
			sum.TotalCollectedCents += int64(p.AmountCents)
		}
		if p.Confirmation != nil && p.Confirmation.IsAwaitingDecision() {
			sum.PaymentsAwaiting++
		}
	}
	sum.CollectionPercentage = CollectionPercentage(sum.TotalExpectedCents, sum.TotalCollectedCents)
	return sum
}
