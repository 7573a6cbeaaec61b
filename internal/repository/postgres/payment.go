package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentSelect = `
	SELECT p.id, p.apartment_id, a.building_id, p.renter_id, p.month,
	       p.amount_cents, p.due_date, COALESCE(p.payment_method, ''),
	       COALESCE(p.transaction_id, ''), p.status, p.paid_at,
	       p.created_at, p.updated_at,
	       pc.id, pc.status, pc.method, pc.reference, pc.notes, pc.verified_at, pc.submitted_at
	FROM payments p
	JOIN apartments a ON a.id = p.apartment_id
	LEFT JOIN payment_confirmations pc ON pc.payment_id = p.id`

const confirmationReturning = `
	id, payment_id, status, method, reference, COALESCE(notes, ''), verified_at, submitted_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	var (
		pcID          sql.NullInt32
		pcStatus      sql.NullString
		pcMethod      sql.NullString
		pcReference   sql.NullString
		pcNotes       sql.NullString
		pcVerifiedAt  sql.NullTime
		pcSubmittedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.ApartmentID, &p.BuildingID, &p.RenterID, &p.Month,
		&p.AmountCents, &p.DueDate, &p.Method, &p.Reference, &p.Status, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
		&pcID, &pcStatus, &pcMethod, &pcReference, &pcNotes, &pcVerifiedAt, &pcSubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if pcID.Valid {
		pc := &domain.PaymentConfirmation{
			ID:        pcID.Int32,
			PaymentID: p.ID,
			Status:    domain.ConfirmationStatus(pcStatus.String),
			Method:    pcMethod.String,
			Reference: pcReference.String,
			Notes:     pcNotes.String,
		}
		if pcVerifiedAt.Valid {
			t := pcVerifiedAt.Time
			pc.VerifiedAt = &t
		}
		if pcSubmittedAt.Valid {
			pc.SubmittedAt = pcSubmittedAt.Time
		}
		p.Confirmation = pc
	}
	return p, nil
}

func scanConfirmation(row interface{ Scan(...any) error }) (*domain.PaymentConfirmation, error) {
	pc := &domain.PaymentConfirmation{}
	err := row.Scan(&pc.ID, &pc.PaymentID, &pc.Status, &pc.Method, &pc.Reference, &pc.Notes, &pc.VerifiedAt, &pc.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	logger.EnterMethod("paymentRepository.GetByID", "paymentID", id)

	p, err := scanPayment(r.db.QueryRowContext(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("paymentRepository.GetByID", "paymentID", id, "found", false)
			return nil, domain.NotFoundError("payment %d not found", id)
		}
		logger.ExitMethodWithError("paymentRepository.GetByID", err, "paymentID", id)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.GetByID", "paymentID", id)
	return p, nil
}

// SubmitConfirmation relies on the UNIQUE(payment_id) constraint: the upsert
// overwrites only a terminal row, so a live claim can never be clobbered.
func (r *paymentRepository) SubmitConfirmation(ctx context.Context, confirmation *domain.PaymentConfirmation) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentRepository.SubmitConfirmation", "paymentID", confirmation.PaymentID)

	query := `
		INSERT INTO payment_confirmations (payment_id, status, method, reference, notes, submitted_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (payment_id) DO UPDATE SET
			status = EXCLUDED.status,
			method = EXCLUDED.method,
			reference = EXCLUDED.reference,
			notes = '',
			verified_at = NULL,
			submitted_at = EXCLUDED.submitted_at
		WHERE payment_confirmations.status IN ('verified', 'rejected')
		RETURNING ` + confirmationReturning

	pc, err := scanConfirmation(r.db.QueryRowContext(ctx, query,
		confirmation.PaymentID, confirmation.Status, confirmation.Method,
		confirmation.Reference, confirmation.SubmittedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("paymentRepository.SubmitConfirmation", "paymentID", confirmation.PaymentID, "applied", false)
			return nil, nil
		}
		logger.ExitMethodWithError("paymentRepository.SubmitConfirmation", err, "paymentID", confirmation.PaymentID)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.SubmitConfirmation", "confirmationID", pc.ID)
	return pc, nil
}

// VerifyConfirmation is all-or-nothing for a single payment: the
// confirmation flip and the payment's paid/paid_at stamp commit together.
func (r *paymentRepository) VerifyConfirmation(ctx context.Context, paymentID int32, now time.Time) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentRepository.VerifyConfirmation", "paymentID", paymentID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.VerifyConfirmation", err, "paymentID", paymentID)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE payment_confirmations SET
			status = 'verified',
			verified_at = $2
		WHERE payment_id = $1 AND status IN ('pending_verification', 'pending_review')
		RETURNING ` + confirmationReturning

	pc, err := scanConfirmation(tx.QueryRowContext(ctx, query, paymentID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("paymentRepository.VerifyConfirmation", "paymentID", paymentID, "applied", false)
			return nil, nil
		}
		logger.ExitMethodWithError("paymentRepository.VerifyConfirmation", err, "paymentID", paymentID)
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE payments SET status = 'paid', paid_at = $2, updated_at = $2 WHERE id = $1`,
		paymentID, now,
	)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.VerifyConfirmation", err, "paymentID", paymentID)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("paymentRepository.VerifyConfirmation", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.VerifyConfirmation", "confirmationID", pc.ID)
	return pc, nil
}

func (r *paymentRepository) RejectConfirmation(ctx context.Context, paymentID int32, reason string, now time.Time) (*domain.PaymentConfirmation, error) {
	logger.EnterMethod("paymentRepository.RejectConfirmation", "paymentID", paymentID)

	query := `
		UPDATE payment_confirmations SET
			status = 'rejected',
			notes = $2
		WHERE payment_id = $1 AND status IN ('pending_verification', 'pending_review')
		RETURNING ` + confirmationReturning

	pc, err := scanConfirmation(r.db.QueryRowContext(ctx, query, paymentID, reason))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("paymentRepository.RejectConfirmation", "paymentID", paymentID, "applied", false)
			return nil, nil
		}
		logger.ExitMethodWithError("paymentRepository.RejectConfirmation", err, "paymentID", paymentID)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.RejectConfirmation", "confirmationID", pc.ID)
	return pc, nil
}

func (r *paymentRepository) ListByRenter(ctx context.Context, renterID int32, month string) ([]domain.Payment, error) {
	logger.EnterMethod("paymentRepository.ListByRenter", "renterID", renterID, "month", month)
	return r.list(ctx, "paymentRepository.ListByRenter", "p.renter_id = $1", renterID, month)
}

func (r *paymentRepository) ListByBuilding(ctx context.Context, buildingID int32, month string) ([]domain.Payment, error) {
	logger.EnterMethod("paymentRepository.ListByBuilding", "buildingID", buildingID, "month", month)
	return r.list(ctx, "paymentRepository.ListByBuilding", "a.building_id = $1", buildingID, month)
}

func (r *paymentRepository) ListAwaitingVerification(ctx context.Context, buildingID int32) ([]domain.Payment, error) {
	logger.EnterMethod("paymentRepository.ListAwaitingVerification", "buildingID", buildingID)

	query := paymentSelect + `
		WHERE a.building_id = $1 AND pc.status IN ('pending_verification', 'pending_review')
		ORDER BY pc.submitted_at ASC`

	return r.queryPayments(ctx, "paymentRepository.ListAwaitingVerification", query, buildingID)
}

func (r *paymentRepository) list(ctx context.Context, method, where string, scopeID int32, month string) ([]domain.Payment, error) {
	query := paymentSelect + " WHERE " + where
	args := []interface{}{scopeID}
	if month != "" {
		query += " AND p.month = $2"
		args = append(args, month)
	}
	query += " ORDER BY p.due_date DESC, p.created_at DESC"
	return r.queryPayments(ctx, method, query, args...)
}

func (r *paymentRepository) queryPayments(ctx context.Context, method, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			logger.ExitMethodWithError(method, err)
			return nil, err
		}
		payments = append(payments, *p)
	}

	logger.ExitMethod(method, "count", len(payments))
	return payments, nil
}
