package postgres

import (
	"context"
	"testing"
	"time"

	"proptrack-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var complaintColumns = []string{
	"id", "apartment_id", "building_id", "renter_id", "title", "description",
	"category", "priority", "status", "manager_marked_resolved",
	"renter_marked_resolved", "resolved_at", "created_at", "updated_at",
}

func complaintRow(id int32, status string, managerMarked, renterMarked bool) *sqlmock.Rows {
	return sqlmock.NewRows(complaintColumns).
		AddRow(id, 20, 10, 300, "Leaking faucet", "Drips all night",
			"plumbing", "medium", status, managerMarked, renterMarked, nil, time.Now(), time.Now())
}

func TestComplaintRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		complaint := &domain.Complaint{
			ApartmentID: 20,
			RenterID:    300,
			Title:       "Leaking faucet",
			Description: "Drips all night",
			Category:    domain.ComplaintCategoryPlumbing,
			Priority:    domain.ComplaintPriorityMedium,
			Status:      domain.ComplaintStatusPending,
		}

		mock.ExpectQuery("INSERT INTO complaints").
			WithArgs(complaint.ApartmentID, complaint.RenterID, complaint.Title, complaint.Description,
				complaint.Category, complaint.Priority, complaint.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(1, time.Now(), time.Now()))

		err := repo.Create(ctx, complaint)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), complaint.ID)
	})
}

func TestComplaintRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM complaints c JOIN apartments a").
			WithArgs(int32(1)).
			WillReturnRows(complaintRow(1, "in_progress", false, false))

		complaint, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), complaint.BuildingID)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM complaints c JOIN apartments a").
			WithArgs(int32(77)).
			WillReturnRows(sqlmock.NewRows(complaintColumns))

		_, err := repo.GetByID(ctx, 77)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestComplaintRepository_SetInProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()

	t.Run("Success_GuardHit", func(t *testing.T) {
		mock.ExpectQuery("UPDATE complaints c SET").
			WithArgs(int32(1), sqlmock.AnyArg()).
			WillReturnRows(complaintRow(1, "in_progress", false, false))

		complaint, err := repo.SetInProgress(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
	})

	t.Run("GuardMiss_NoLongerPending", func(t *testing.T) {
		mock.ExpectQuery("UPDATE complaints c SET").
			WithArgs(int32(1), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(complaintColumns))

		complaint, err := repo.SetInProgress(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, complaint)
	})
}

func TestComplaintRepository_ApplyResolution(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("ManagerMark_FlagOnly", func(t *testing.T) {
		mock.ExpectQuery("UPDATE complaints c SET manager_marked_resolved = TRUE").
			WithArgs(int32(1), now).
			WillReturnRows(complaintRow(1, "in_progress", true, false))

		complaint, err := repo.ApplyResolution(ctx, 1, domain.ResolutionPathManagerMark, now)
		assert.NoError(t, err)
		assert.True(t, complaint.ManagerMarkedResolved)
		assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
	})

	t.Run("RenterConfirm_Escalates", func(t *testing.T) {
		rows := sqlmock.NewRows(complaintColumns).
			AddRow(1, 20, 10, 300, "Leaking faucet", "Drips all night",
				"plumbing", "medium", "resolved", true, true, now, time.Now(), time.Now())
		mock.ExpectQuery("UPDATE complaints c SET renter_marked_resolved = TRUE").
			WithArgs(int32(1), now).
			WillReturnRows(rows)

		complaint, err := repo.ApplyResolution(ctx, 1, domain.ResolutionPathRenterConfirm, now)
		assert.NoError(t, err)
		assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
		assert.NotNil(t, complaint.ResolvedAt)
	})

	t.Run("RenterConfirm_GuardMiss_ManagerNotMarked", func(t *testing.T) {
		mock.ExpectQuery("UPDATE complaints c SET renter_marked_resolved = TRUE").
			WithArgs(int32(1), now).
			WillReturnRows(sqlmock.NewRows(complaintColumns))

		complaint, err := repo.ApplyResolution(ctx, 1, domain.ResolutionPathRenterConfirm, now)
		assert.NoError(t, err)
		assert.Nil(t, complaint)
	})

	t.Run("RenterDirect_GuardMiss_AlreadyResolved", func(t *testing.T) {
		mock.ExpectQuery("UPDATE complaints c SET manager_marked_resolved = TRUE, renter_marked_resolved = TRUE").
			WithArgs(int32(1), now).
			WillReturnRows(sqlmock.NewRows(complaintColumns))

		complaint, err := repo.ApplyResolution(ctx, 1, domain.ResolutionPathRenterDirect, now)
		assert.NoError(t, err)
		assert.Nil(t, complaint)
	})

	t.Run("Error_UnknownPath", func(t *testing.T) {
		_, err := repo.ApplyResolution(ctx, 1, domain.ResolutionPath("escalate"), now)
		assert.Error(t, err)
	})
}

func TestComplaintRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM complaints WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM complaints WHERE id = \\$1").
			WithArgs(int32(77)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 77)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestComplaintRepository_ListByBuilding(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewComplaintRepository(db)
	ctx := context.Background()

	t.Run("Success_StatusFilter", func(t *testing.T) {
		rows := complaintRow(1, "pending", false, false).
			AddRow(2, 21, 10, 301, "No hot water", "Since Tuesday",
				"plumbing", "high", "pending", false, false, nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM complaints c JOIN apartments a (.+) AND c.status = ANY").
			WithArgs(int32(10), sqlmock.AnyArg()).
			WillReturnRows(rows)

		complaints, err := repo.ListByBuilding(ctx, 10, []domain.ComplaintStatus{domain.ComplaintStatusPending})
		assert.NoError(t, err)
		assert.Equal(t, 2, len(complaints))
	})

	t.Run("Success_Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM complaints c JOIN apartments a").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(complaintColumns))

		complaints, err := repo.ListByBuilding(ctx, 10, nil)
		assert.NoError(t, err)
		assert.Empty(t, complaints)
	})
}
