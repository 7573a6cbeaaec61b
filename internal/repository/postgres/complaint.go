package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type complaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) repository.ComplaintRepository {
	return &complaintRepository{db: db}
}

const complaintReturning = `
	c.id, c.apartment_id, a.building_id, c.renter_id, c.title, c.description,
	c.category, c.priority, c.status, c.manager_marked_resolved,
	c.renter_marked_resolved, c.resolved_at, c.created_at, c.updated_at`

func scanComplaint(row interface{ Scan(...any) error }) (*domain.Complaint, error) {
	c := &domain.Complaint{}
	err := row.Scan(
		&c.ID, &c.ApartmentID, &c.BuildingID, &c.RenterID, &c.Title, &c.Description,
		&c.Category, &c.Priority, &c.Status, &c.ManagerMarkedResolved,
		&c.RenterMarkedResolved, &c.ResolvedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	logger.EnterMethod("complaintRepository.Create", "apartmentID", complaint.ApartmentID, "renterID", complaint.RenterID)

	query := `
		INSERT INTO complaints (
			apartment_id, renter_id, title, description, category, priority,
			status, manager_marked_resolved, renter_marked_resolved, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE, $8, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		complaint.ApartmentID, complaint.RenterID, complaint.Title, complaint.Description,
		complaint.Category, complaint.Priority, complaint.Status, now,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)

	if err != nil {
		logger.ExitMethodWithError("complaintRepository.Create", err, "apartmentID", complaint.ApartmentID)
		return err
	}

	logger.ExitMethod("complaintRepository.Create", "complaintID", complaint.ID)
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int32) (*domain.Complaint, error) {
	logger.EnterMethod("complaintRepository.GetByID", "complaintID", id)

	query := fmt.Sprintf(`
		SELECT %s
		FROM complaints c
		JOIN apartments a ON a.id = c.apartment_id
		WHERE c.id = $1
	`, complaintReturning)

	c, err := scanComplaint(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("complaintRepository.GetByID", "complaintID", id, "found", false)
			return nil, domain.NotFoundError("complaint %d not found", id)
		}
		logger.ExitMethodWithError("complaintRepository.GetByID", err, "complaintID", id)
		return nil, err
	}

	logger.ExitMethod("complaintRepository.GetByID", "complaintID", id)
	return c, nil
}

// SetInProgress is a single conditional statement: the pending guard lives
// in the WHERE clause, not in a prior read.
func (r *complaintRepository) SetInProgress(ctx context.Context, id int32) (*domain.Complaint, error) {
	logger.EnterMethod("complaintRepository.SetInProgress", "complaintID", id)

	query := fmt.Sprintf(`
		UPDATE complaints c SET
			status = 'in_progress',
			updated_at = $2
		FROM apartments a
		WHERE c.id = $1 AND a.id = c.apartment_id AND c.status = 'pending'
		RETURNING %s
	`, complaintReturning)

	c, err := scanComplaint(r.db.QueryRowContext(ctx, query, id, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("complaintRepository.SetInProgress", "complaintID", id, "applied", false)
			return nil, nil
		}
		logger.ExitMethodWithError("complaintRepository.SetInProgress", err, "complaintID", id)
		return nil, err
	}

	logger.ExitMethod("complaintRepository.SetInProgress", "complaintID", id)
	return c, nil
}

// ApplyResolution issues one conditional UPDATE per path. The escalation to
// resolved and the resolved_at stamp happen inside the same statement that
// sets a flag, so two parties acting at once cannot lose the escalation.
func (r *complaintRepository) ApplyResolution(ctx context.Context, id int32, path domain.ResolutionPath, now time.Time) (*domain.Complaint, error) {
	logger.EnterMethod("complaintRepository.ApplyResolution", "complaintID", id, "path", path)

	var query string
	switch path {
	case domain.ResolutionPathManagerMark:
		query = `
			UPDATE complaints c SET
				manager_marked_resolved = TRUE,
				status = CASE WHEN c.renter_marked_resolved THEN 'resolved' ELSE c.status END,
				resolved_at = CASE WHEN c.renter_marked_resolved THEN COALESCE(c.resolved_at, $2) ELSE c.resolved_at END,
				updated_at = $2
			FROM apartments a
			WHERE c.id = $1 AND a.id = c.apartment_id
			RETURNING ` + complaintReturning
	case domain.ResolutionPathRenterConfirm:
		query = `
			UPDATE complaints c SET
				renter_marked_resolved = TRUE,
				status = 'resolved',
				resolved_at = COALESCE(c.resolved_at, $2),
				updated_at = $2
			FROM apartments a
			WHERE c.id = $1 AND a.id = c.apartment_id AND c.manager_marked_resolved
			RETURNING ` + complaintReturning
	case domain.ResolutionPathRenterDirect:
		query = `
			UPDATE complaints c SET
				manager_marked_resolved = TRUE,
				renter_marked_resolved = TRUE,
				status = 'resolved',
				resolved_at = COALESCE(c.resolved_at, $2),
				updated_at = $2
			FROM apartments a
			WHERE c.id = $1 AND a.id = c.apartment_id AND c.status IN ('pending', 'in_progress')
			RETURNING ` + complaintReturning
	default:
		return nil, fmt.Errorf("unknown resolution path: %s", path)
	}

	c, err := scanComplaint(r.db.QueryRowContext(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("complaintRepository.ApplyResolution", "complaintID", id, "path", path, "applied", false)
			return nil, nil
		}
		logger.ExitMethodWithError("complaintRepository.ApplyResolution", err, "complaintID", id, "path", path)
		return nil, err
	}

	logger.ExitMethod("complaintRepository.ApplyResolution", "complaintID", id, "path", path, "status", c.Status)
	return c, nil
}

func (r *complaintRepository) Delete(ctx context.Context, id int32) error {
	logger.EnterMethod("complaintRepository.Delete", "complaintID", id)

	result, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id)
	if err != nil {
		logger.ExitMethodWithError("complaintRepository.Delete", err, "complaintID", id)
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		logger.ExitMethod("complaintRepository.Delete", "complaintID", id, "found", false)
		return domain.NotFoundError("complaint %d not found", id)
	}

	logger.ExitMethod("complaintRepository.Delete", "complaintID", id)
	return nil
}

func (r *complaintRepository) ListByRenter(ctx context.Context, renterID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	logger.EnterMethod("complaintRepository.ListByRenter", "renterID", renterID)
	return r.list(ctx, "complaintRepository.ListByRenter", "c.renter_id = $1", renterID, statuses)
}

func (r *complaintRepository) ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	logger.EnterMethod("complaintRepository.ListByBuilding", "buildingID", buildingID)
	return r.list(ctx, "complaintRepository.ListByBuilding", "a.building_id = $1", buildingID, statuses)
}

func (r *complaintRepository) list(ctx context.Context, method, where string, scopeID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM complaints c
		JOIN apartments a ON a.id = c.apartment_id
		WHERE %s
	`, complaintReturning, where)

	args := []interface{}{scopeID}
	if len(statuses) > 0 {
		statusStrs := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrs[i] = string(s)
		}
		query += " AND c.status = ANY($2)"
		args = append(args, pq.Array(statusStrs))
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError(method, err, "scopeID", scopeID)
		return nil, err
	}
	defer rows.Close()

	complaints := []domain.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			logger.ExitMethodWithError(method, err, "scopeID", scopeID)
			return nil, err
		}
		complaints = append(complaints, *c)
	}

	logger.ExitMethod(method, "scopeID", scopeID, "count", len(complaints))
	return complaints, nil
}
