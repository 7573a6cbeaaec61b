package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) repository.BillRepository {
	return &billRepository{db: db}
}

const billColumns = `
	id, building_id, title, amount_cents, due_date, status, paid_date, created_at`

func scanBill(row interface{ Scan(...any) error }) (*domain.Bill, error) {
	b := &domain.Bill{}
	err := row.Scan(&b.ID, &b.BuildingID, &b.Title, &b.AmountCents, &b.DueDate, &b.Status, &b.PaidDate, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *billRepository) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	logger.EnterMethod("billRepository.GetByID", "billID", id)

	b, err := scanBill(r.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("billRepository.GetByID", "billID", id, "found", false)
			return nil, domain.NotFoundError("bill %d not found", id)
		}
		logger.ExitMethodWithError("billRepository.GetByID", err, "billID", id)
		return nil, err
	}

	logger.ExitMethod("billRepository.GetByID", "billID", id)
	return b, nil
}

func (r *billRepository) ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.BillStatus) ([]domain.Bill, error) {
	logger.EnterMethod("billRepository.ListByBuilding", "buildingID", buildingID)

	query := `SELECT ` + billColumns + ` FROM bills WHERE building_id = $1`
	args := []interface{}{buildingID}

	if len(statuses) > 0 {
		statusStrs := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrs[i] = string(s)
		}
		query += " AND status = ANY($2)"
		args = append(args, pq.Array(statusStrs))
	}
	query += " ORDER BY due_date DESC"

	return r.queryBills(ctx, "billRepository.ListByBuilding", query, args...)
}

// ListDueInMonth filters on the calendar year/month of due_date, not exact
// date equality.
func (r *billRepository) ListDueInMonth(ctx context.Context, buildingID int32, year int, month time.Month) ([]domain.Bill, error) {
	logger.EnterMethod("billRepository.ListDueInMonth", "buildingID", buildingID, "year", year, "month", int(month))

	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE building_id = $1
		  AND EXTRACT(YEAR FROM due_date) = $2
		  AND EXTRACT(MONTH FROM due_date) = $3
		ORDER BY due_date ASC`

	return r.queryBills(ctx, "billRepository.ListDueInMonth", query, buildingID, year, int(month))
}

func (r *billRepository) queryBills(ctx context.Context, method, query string, args ...interface{}) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			logger.ExitMethodWithError(method, err)
			return nil, err
		}
		bills = append(bills, *b)
	}

	logger.ExitMethod(method, "count", len(bills))
	return bills, nil
}
