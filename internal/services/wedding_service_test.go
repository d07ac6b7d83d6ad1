package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wedplan/internal/models"
	"wedplan/internal/pagination"
	"wedplan/internal/testutil"
)

const missingID = "0190f3d2-6c3b-7a11-8b2c-1234567890ab"

func TestCreateWedding(t *testing.T) {
	t.Run("valid_creates_owner_membership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2026, 6, 18, 19, 0, 0, 0, time.UTC)
		wedding, err := svc.CreateWedding(user.ID, WeddingInput{
			Title:      "Noa & Eitan",
			PartnerOne: "Noa",
			PartnerTwo: "Eitan",
			EventDate:  &date,
		})
		testutil.AssertNoError(t, err)

		if wedding.ID == "" {
			t.Fatal("expected wedding ID to be generated")
		}
		if wedding.Currency != "ILS" {
			t.Errorf("expected default currency ILS, got %s", wedding.Currency)
		}
		if wedding.OwnerID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, wedding.OwnerID)
		}

		member, err := svc.RequireMember(user.ID, wedding.ID)
		testutil.AssertNoError(t, err)
		if member.Role != models.MemberRoleOwner {
			t.Errorf("expected owner role, got %s", member.Role)
		}
	})

	t.Run("currency_uppercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		user := testutil.CreateTestUser(t, db)

		wedding, err := svc.CreateWedding(user.ID, WeddingInput{Title: "Abroad", Currency: "eur"})
		testutil.AssertNoError(t, err)
		if wedding.Currency != "EUR" {
			t.Errorf("expected EUR, got %s", wedding.Currency)
		}
	})

	t.Run("empty_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateWedding(user.ID, WeddingInput{Title: "  "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserWeddings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWeddingService(db, "ILS")
	owner := testutil.CreateTestUser(t, db)
	participant := testutil.CreateTestUser(t, db)
	stranger := testutil.CreateTestUser(t, db)

	w1 := testutil.CreateTestWedding(t, db, owner.ID)
	testutil.CreateTestWedding(t, db, owner.ID)
	testutil.AddTestMember(t, db, w1.ID, participant.ID, models.MemberRoleParticipant)
	testutil.CreateTestWedding(t, db, stranger.ID)

	page := pagination.PageRequest{Page: 1, PageSize: 20}

	result, err := svc.GetUserWeddings(owner.ID, page)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 weddings for owner, got %d", result.TotalItems)
	}

	result, err = svc.GetUserWeddings(participant.ID, page)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 || result.Data[0].ID != w1.ID {
		t.Errorf("expected participant to see only the shared wedding, got %+v", result.Data)
	}
}

func TestGetWeddingByID(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		participant := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)
		testutil.AddTestMember(t, db, wedding.ID, participant.ID, models.MemberRoleParticipant)

		got, err := svc.GetWeddingByID(participant.ID, wedding.ID)
		testutil.AssertNoError(t, err)
		if got.Title != wedding.Title {
			t.Errorf("expected title %s, got %s", wedding.Title, got.Title)
		}
	})

	t.Run("non_member_gets_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		_, err := svc.GetWeddingByID(stranger.ID, wedding.ID)
		testutil.AssertAppError(t, err, "WEDDING_NOT_FOUND")
	})

	t.Run("missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetWeddingByID(user.ID, missingID)
		testutil.AssertAppError(t, err, "WEDDING_NOT_FOUND")
	})
}

func TestUpdateWedding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWeddingService(db, "ILS")
	owner := testutil.CreateTestUser(t, db)
	participant := testutil.CreateTestUser(t, db)
	wedding := testutil.CreateTestWedding(t, db, owner.ID)
	testutil.AddTestMember(t, db, wedding.ID, participant.ID, models.MemberRoleParticipant)

	updated, err := svc.UpdateWedding(participant.ID, wedding.ID, WeddingInput{Location: "Haifa", Currency: "usd"})
	testutil.AssertNoError(t, err)

	if updated.Location != "Haifa" {
		t.Errorf("expected location Haifa, got %s", updated.Location)
	}
	if updated.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", updated.Currency)
	}
	if updated.Title != wedding.Title {
		t.Errorf("expected title to be unchanged, got %s", updated.Title)
	}
}

func TestDeleteWedding(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		err := svc.DeleteWedding(owner.ID, wedding.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetWeddingByID(owner.ID, wedding.ID)
		testutil.AssertAppError(t, err, "WEDDING_NOT_FOUND")
	})

	t.Run("participant_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		participant := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)
		testutil.AddTestMember(t, db, wedding.ID, participant.ID, models.MemberRoleParticipant)

		err := svc.DeleteWedding(participant.ID, wedding.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestParticipants(t *testing.T) {
	t.Run("add_list_remove", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		friend := testutil.CreateTestUserWithEmail(t, db, "friend@example.com")
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		member, err := svc.AddParticipant(owner.ID, wedding.ID, "Friend@Example.com")
		testutil.AssertNoError(t, err)
		if member.UserID != friend.ID || member.Role != models.MemberRoleParticipant {
			t.Errorf("unexpected member %+v", member)
		}

		members, err := svc.ListParticipants(friend.ID, wedding.ID)
		testutil.AssertNoError(t, err)
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
		if members[0].Role != models.MemberRoleOwner {
			t.Errorf("expected owner to be listed first, got %s", members[0].Role)
		}
		if members[1].User == nil || members[1].User.Email != "friend@example.com" {
			t.Error("expected participant user to be preloaded")
		}

		err = svc.RemoveParticipant(owner.ID, wedding.ID, friend.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.RequireMember(friend.ID, wedding.ID)
		testutil.AssertAppError(t, err, "WEDDING_NOT_FOUND")

		// re-inviting after removal works
		_, err = svc.AddParticipant(owner.ID, wedding.ID, "friend@example.com")
		testutil.AssertNoError(t, err)
	})

	t.Run("already_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		_, err := svc.AddParticipant(owner.ID, wedding.ID, owner.Email)
		testutil.AssertAppError(t, err, "ALREADY_MEMBER")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		_, err := svc.AddParticipant(owner.ID, wedding.ID, "ghost@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("participant_cannot_invite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		participant := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)
		testutil.AddTestMember(t, db, wedding.ID, participant.ID, models.MemberRoleParticipant)

		_, err := svc.AddParticipant(participant.ID, wedding.ID, other.Email)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("cannot_remove_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		err := svc.RemoveParticipant(owner.ID, wedding.ID, owner.ID)
		testutil.AssertAppError(t, err, "CANNOT_REMOVE_OWNER")
	})

	t.Run("remove_unknown_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewWeddingService(db, "ILS")
		owner := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, owner.ID)

		err := svc.RemoveParticipant(owner.ID, wedding.ID, missingID)
		testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	})
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}
	return db, mock
}

func TestRequireMember_DatabaseFailures(t *testing.T) {
	t.Run("query_error_is_internal", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewWeddingService(db, "ILS")

		mock.ExpectQuery(`SELECT (.+) FROM "wedding_members"`).
			WillReturnError(errors.New("connection reset by peer"))

		_, err := svc.RequireMember(missingID, missingID)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("no_rows_is_not_found", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewWeddingService(db, "ILS")

		mock.ExpectQuery(`SELECT (.+) FROM "wedding_members"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wedding_id", "user_id", "role"}))

		_, err := svc.RequireMember(missingID, missingID)
		testutil.AssertAppError(t, err, "WEDDING_NOT_FOUND")
	})

	t.Run("create_rolls_back_on_member_insert_failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewWeddingService(db, "ILS")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "weddings"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "wedding_members"`).WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := svc.CreateWedding(missingID, WeddingInput{Title: "Broken"})
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
