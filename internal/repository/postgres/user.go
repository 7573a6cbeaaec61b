package postgres

import (
	"context"
	"database/sql"
	"errors"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, email, name, role, created_on, updated_on`

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	logger.EnterMethod("userRepository.GetByID", "userID", id)

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("userRepository.GetByID", "userID", id, "found", false)
			return nil, domain.NotFoundError("user %d not found", id)
		}
		logger.ExitMethodWithError("userRepository.GetByID", err, "userID", id)
		return nil, err
	}

	logger.ExitMethod("userRepository.GetByID", "userID", id)
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	logger.EnterMethod("userRepository.GetByEmail")

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("userRepository.GetByEmail", "found", false)
			return nil, domain.NotFoundError("user with email %s not found", email)
		}
		logger.ExitMethodWithError("userRepository.GetByEmail", err)
		return nil, err
	}

	logger.ExitMethod("userRepository.GetByEmail", "userID", u.ID)
	return u, nil
}
