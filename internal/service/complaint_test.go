package service

import (
	"context"
	"testing"
	"time"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	testBuilding = &domain.Building{ID: 10, Name: "Maple Court", OwnerID: 100, ManagerID: 200}
	renterActor  = access.Actor{ID: 300, Role: domain.RoleRenter}
	managerActor = access.Actor{ID: 200, Role: domain.RoleManager}
	ownerActor   = access.Actor{ID: 100, Role: domain.RoleOwner}
)

func openComplaint(status domain.ComplaintStatus, managerMarked, renterMarked bool) *domain.Complaint {
	return &domain.Complaint{
		ID:                    1,
		ApartmentID:           20,
		BuildingID:            10,
		RenterID:              300,
		Title:                 "Leaking faucet",
		Status:                status,
		ManagerMarkedResolved: managerMarked,
		RenterMarkedResolved:  renterMarked,
	}
}

// TestComplaintService_Create verifies renter-side intake: required fields,
// category/priority defaulting, and that only the occupying renter can file
// against an apartment.
func TestComplaintService_Create(t *testing.T) {
	ctx := context.Background()
	renterID := int32(300)
	apartment := &domain.Apartment{ID: 20, BuildingID: 10, Unit: "2B", RenterID: &renterID}

	t.Run("Success_Defaults", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockPropertyRepo.On("GetApartment", ctx, int32(20)).Return(apartment, nil).Once()
		mockComplaintRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			return c.Category == domain.ComplaintCategoryGeneral &&
				c.Priority == domain.ComplaintPriorityMedium &&
				c.Status == domain.ComplaintStatusPending &&
				c.RenterID == 300
		})).Return(nil).Once()

		complaint, err := svc.Create(ctx, renterActor, 20, "Leaking faucet", "Drips all night", "", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)
		mockComplaintRepo.AssertExpectations(t)
		mockPropertyRepo.AssertExpectations(t)
	})

	t.Run("Error_MissingTitle", func(t *testing.T) {
		svc := NewComplaintService(new(MockComplaintRepo), new(MockPropertyRepo))

		_, err := svc.Create(ctx, renterActor, 20, "", "Drips all night", "", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Error_UnknownCategory", func(t *testing.T) {
		svc := NewComplaintService(new(MockComplaintRepo), new(MockPropertyRepo))

		_, err := svc.Create(ctx, renterActor, 20, "Leaking faucet", "Drips", "roofing", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Error_NotOccupyingRenter", func(t *testing.T) {
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(new(MockComplaintRepo), mockPropertyRepo)

		mockPropertyRepo.On("GetApartment", ctx, int32(20)).Return(apartment, nil).Once()

		other := access.Actor{ID: 999, Role: domain.RoleRenter}
		_, err := svc.Create(ctx, other, 20, "Leaking faucet", "Drips", "", "")
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
		mockPropertyRepo.AssertExpectations(t)
	})
}

// TestComplaintService_Start verifies the pending -> in_progress transition
// and its idempotence once the complaint has moved on.
func TestComplaintService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()
		mockComplaintRepo.On("SetInProgress", ctx, int32(1)).
			Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Once()

		complaint, err := svc.Start(ctx, managerActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
		mockComplaintRepo.AssertExpectations(t)
	})

	t.Run("Noop_AlreadyInProgress", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		complaint, err := svc.Start(ctx, managerActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
		mockComplaintRepo.AssertNotCalled(t, "SetInProgress", ctx, int32(1))
	})

	t.Run("Error_NotManager", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		_, err := svc.Start(ctx, renterActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})
}

// TestComplaintService_DualConfirmation walks the two-party resolution flow:
// the manager marks the work done, the complaint reads as awaiting
// confirmation, and only the renter's confirmation reaches resolved.
func TestComplaintService_DualConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("ManagerMark_ThenRenterConfirm", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		// Manager marks first: status stays in_progress, flag set.
		marked := openComplaint(domain.ComplaintStatusInProgress, true, false)
		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Twice()
		mockComplaintRepo.On("ApplyResolution", ctx, int32(1), domain.ResolutionPathManagerMark, mock.AnythingOfType("time.Time")).
			Return(marked, nil).Once()

		complaint, err := svc.ManagerMarkResolved(ctx, managerActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
		assert.Equal(t, domain.ComplaintDisplayAwaitingConfirmation, complaint.DisplayStatus())

		// Renter confirms: both flags set, status resolved.
		resolvedAt := time.Now()
		resolved := openComplaint(domain.ComplaintStatusResolved, true, true)
		resolved.ResolvedAt = &resolvedAt
		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(marked, nil).Once()
		mockComplaintRepo.On("ApplyResolution", ctx, int32(1), domain.ResolutionPathRenterConfirm, mock.AnythingOfType("time.Time")).
			Return(resolved, nil).Once()

		complaint, err = svc.RenterConfirmResolution(ctx, renterActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
		assert.NotNil(t, complaint.ResolvedAt)
		mockComplaintRepo.AssertExpectations(t)
	})

	t.Run("Error_ConfirmBeforeManagerMark", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		_, err := svc.RenterConfirmResolution(ctx, renterActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
		mockComplaintRepo.AssertNotCalled(t, "ApplyResolution", ctx, int32(1), domain.ResolutionPathRenterConfirm, mock.Anything)
	})

	t.Run("Idempotent_ManagerMarkOnResolved", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusResolved, true, true), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		complaint, err := svc.ManagerMarkResolved(ctx, managerActor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
		mockComplaintRepo.AssertNotCalled(t, "ApplyResolution", ctx, int32(1), domain.ResolutionPathManagerMark, mock.Anything)
	})

	t.Run("Error_CrossRoleActors", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		// Renter cannot take the manager path.
		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Twice()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Twice()

		_, err := svc.ManagerMarkResolved(ctx, renterActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))

		// Manager cannot take the renter path.
		_, err = svc.RenterDirectResolve(ctx, managerActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})
}

// TestComplaintService_RenterDirectResolve verifies the renter-initiated
// short circuit and its strictness on already resolved complaints.
func TestComplaintService_RenterDirectResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_FromPending", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		resolved := openComplaint(domain.ComplaintStatusResolved, true, true)
		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()
		mockComplaintRepo.On("ApplyResolution", ctx, int32(1), domain.ResolutionPathRenterDirect, mock.AnythingOfType("time.Time")).
			Return(resolved, nil).Once()

		complaint, err := svc.RenterDirectResolve(ctx, renterActor, 1)
		assert.NoError(t, err)
		assert.True(t, complaint.ManagerMarkedResolved)
		assert.True(t, complaint.RenterMarkedResolved)
		mockComplaintRepo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyResolved", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusResolved, true, true), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		_, err := svc.RenterDirectResolve(ctx, renterActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	})

	t.Run("Error_LostRaceToResolved", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		// The pre-check sees an open complaint but a concurrent transition
		// resolves it before the conditional update lands.
		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusInProgress, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()
		mockComplaintRepo.On("ApplyResolution", ctx, int32(1), domain.ResolutionPathRenterDirect, mock.AnythingOfType("time.Time")).
			Return(nil, nil).Once()

		_, err := svc.RenterDirectResolve(ctx, renterActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
		mockComplaintRepo.AssertExpectations(t)
	})
}

// TestComplaintService_Get verifies the read gate: owning renter, building
// manager, and building owner may read; everyone else is refused after the
// record is known to exist.
func TestComplaintService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AllReaderRoles", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Times(3)
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Times(3)

		for _, actor := range []access.Actor{renterActor, managerActor, ownerActor} {
			_, err := svc.Get(ctx, actor, 1)
			assert.NoError(t, err)
		}
	})

	t.Run("Error_ForeignRenter", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Once()
		mockPropertyRepo.On("GetBuilding", ctx, int32(10)).Return(testBuilding, nil).Once()

		_, err := svc.Get(ctx, access.Actor{ID: 999, Role: domain.RoleRenter}, 1)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})

	t.Run("Error_NotFoundBeforeForbidden", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		mockPropertyRepo := new(MockPropertyRepo)
		svc := NewComplaintService(mockComplaintRepo, mockPropertyRepo)

		mockComplaintRepo.On("GetByID", ctx, int32(77)).
			Return(nil, domain.NotFoundError("complaint 77 not found")).Once()

		_, err := svc.Get(ctx, access.Actor{ID: 999, Role: domain.RoleRenter}, 77)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestComplaintService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		svc := NewComplaintService(mockComplaintRepo, new(MockPropertyRepo))

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusResolved, true, true), nil).Once()
		mockComplaintRepo.On("Delete", ctx, int32(1)).Return(nil).Once()

		err := svc.Delete(ctx, renterActor, 1)
		assert.NoError(t, err)
		mockComplaintRepo.AssertExpectations(t)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		mockComplaintRepo := new(MockComplaintRepo)
		svc := NewComplaintService(mockComplaintRepo, new(MockPropertyRepo))

		mockComplaintRepo.On("GetByID", ctx, int32(1)).Return(openComplaint(domain.ComplaintStatusPending, false, false), nil).Once()

		err := svc.Delete(ctx, managerActor, 1)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
		mockComplaintRepo.AssertNotCalled(t, "Delete", ctx, int32(1))
	})
}
