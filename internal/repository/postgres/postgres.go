package postgres

import (
	"database/sql"

	"proptrack-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ComplaintRepository
	repository.PaymentRepository
	repository.BillRepository
	repository.PropertyRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		ComplaintRepository: NewComplaintRepository(db),
		PaymentRepository:   NewPaymentRepository(db),
		BillRepository:      NewBillRepository(db),
		PropertyRepository:  NewPropertyRepository(db),
		UserRepository:      NewUserRepository(db),
	}
}
