package service

import (
	"context"
	"time"

	"proptrack-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockComplaintRepo
type MockComplaintRepo struct {
	mock.Mock
}

func (m *MockComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}
func (m *MockComplaintRepo) GetByID(ctx context.Context, id int32) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) SetInProgress(ctx context.Context, id int32) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) ApplyResolution(ctx context.Context, id int32, path domain.ResolutionPath, now time.Time) (*domain.Complaint, error) {
	args := m.Called(ctx, id, path, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockComplaintRepo) ListByRenter(ctx context.Context, renterID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	args := m.Called(ctx, renterID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.ComplaintStatus) ([]domain.Complaint, error) {
	args := m.Called(ctx, buildingID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SubmitConfirmation(ctx context.Context, confirmation *domain.PaymentConfirmation) (*domain.PaymentConfirmation, error) {
	args := m.Called(ctx, confirmation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentConfirmation), args.Error(1)
}
func (m *MockPaymentRepo) VerifyConfirmation(ctx context.Context, paymentID int32, now time.Time) (*domain.PaymentConfirmation, error) {
	args := m.Called(ctx, paymentID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentConfirmation), args.Error(1)
}
func (m *MockPaymentRepo) RejectConfirmation(ctx context.Context, paymentID int32, reason string, now time.Time) (*domain.PaymentConfirmation, error) {
	args := m.Called(ctx, paymentID, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentConfirmation), args.Error(1)
}
func (m *MockPaymentRepo) ListByRenter(ctx context.Context, renterID int32, month string) ([]domain.Payment, error) {
	args := m.Called(ctx, renterID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByBuilding(ctx context.Context, buildingID int32, month string) ([]domain.Payment, error) {
	args := m.Called(ctx, buildingID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListAwaitingVerification(ctx context.Context, buildingID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockBillRepo
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListByBuilding(ctx context.Context, buildingID int32, statuses []domain.BillStatus) ([]domain.Bill, error) {
	args := m.Called(ctx, buildingID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListDueInMonth(ctx context.Context, buildingID int32, year int, month time.Month) ([]domain.Bill, error) {
	args := m.Called(ctx, buildingID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) GetBuilding(ctx context.Context, id int32) (*domain.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockPropertyRepo) GetApartment(ctx context.Context, id int32) (*domain.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}
func (m *MockPropertyRepo) CountRenters(ctx context.Context, buildingID int32) (int, error) {
	args := m.Called(ctx, buildingID)
	return args.Int(0), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
