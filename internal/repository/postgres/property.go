package postgres

import (
	"context"
	"database/sql"
	"errors"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetBuilding(ctx context.Context, id int32) (*domain.Building, error) {
	logger.EnterMethod("propertyRepository.GetBuilding", "buildingID", id)

	query := `
		SELECT id, name, COALESCE(address, ''), owner_id, manager_id, created_at
		FROM buildings WHERE id = $1
	`
	b := &domain.Building{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Address, &b.OwnerID, &b.ManagerID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("propertyRepository.GetBuilding", "buildingID", id, "found", false)
			return nil, domain.NotFoundError("building %d not found", id)
		}
		logger.ExitMethodWithError("propertyRepository.GetBuilding", err, "buildingID", id)
		return nil, err
	}

	logger.ExitMethod("propertyRepository.GetBuilding", "buildingID", id)
	return b, nil
}

func (r *propertyRepository) GetApartment(ctx context.Context, id int32) (*domain.Apartment, error) {
	logger.EnterMethod("propertyRepository.GetApartment", "apartmentID", id)

	query := `
		SELECT id, building_id, COALESCE(unit, ''), renter_id
		FROM apartments WHERE id = $1
	`
	a := &domain.Apartment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.BuildingID, &a.Unit, &a.RenterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethod("propertyRepository.GetApartment", "apartmentID", id, "found", false)
			return nil, domain.NotFoundError("apartment %d not found", id)
		}
		logger.ExitMethodWithError("propertyRepository.GetApartment", err, "apartmentID", id)
		return nil, err
	}

	logger.ExitMethod("propertyRepository.GetApartment", "apartmentID", id)
	return a, nil
}

func (r *propertyRepository) CountRenters(ctx context.Context, buildingID int32) (int, error) {
	logger.EnterMethod("propertyRepository.CountRenters", "buildingID", buildingID)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT renter_id) FROM apartments WHERE building_id = $1 AND renter_id IS NOT NULL`,
		buildingID,
	).Scan(&count)
	if err != nil {
		logger.ExitMethodWithError("propertyRepository.CountRenters", err, "buildingID", buildingID)
		return 0, err
	}

	logger.ExitMethod("propertyRepository.CountRenters", "buildingID", buildingID, "count", count)
	return count, nil
}
