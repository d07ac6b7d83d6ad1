package services

import (
	"testing"
	"time"

	"wedplan/internal/pagination"
	"wedplan/internal/testutil"
)

func TestCreateItem(t *testing.T) {
	t.Run("positions_append", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewChecklistService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		first, err := svc.CreateItem(user.ID, wedding.ID, ChecklistInput{Title: "Book venue"})
		testutil.AssertNoError(t, err)
		second, err := svc.CreateItem(user.ID, wedding.ID, ChecklistInput{Title: "Send invitations"})
		testutil.AssertNoError(t, err)

		if first.Position != 1 || second.Position != 2 {
			t.Errorf("expected positions 1 and 2, got %d and %d", first.Position, second.Position)
		}
	})

	t.Run("explicit_position_and_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewChecklistService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		pos := 10
		due := time.Now().AddDate(0, 2, 0)
		item, err := svc.CreateItem(user.ID, wedding.ID, ChecklistInput{Title: "Rings", Position: &pos, DueDate: &due})
		testutil.AssertNoError(t, err)

		if item.Position != 10 || item.DueDate == nil {
			t.Errorf("unexpected item %+v", item)
		}
	})

	t.Run("empty_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewChecklistService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		_, err := svc.CreateItem(user.ID, wedding.ID, ChecklistInput{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestToggleItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewChecklistService(db)
	user := testutil.CreateTestUser(t, db)
	wedding := testutil.CreateTestWedding(t, db, user.ID)
	item := testutil.CreateTestChecklistItem(t, db, wedding.ID)

	toggled, err := svc.ToggleItem(user.ID, wedding.ID, item.ID)
	testutil.AssertNoError(t, err)
	if !toggled.Done || toggled.CompletedAt == nil {
		t.Fatalf("expected item done with completion time, got %+v", toggled)
	}

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	done := true
	result, err := svc.GetWeddingChecklist(user.ID, wedding.ID, page, &done)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 done item, got %d", result.TotalItems)
	}

	toggled, err = svc.ToggleItem(user.ID, wedding.ID, item.ID)
	testutil.AssertNoError(t, err)
	if toggled.Done || toggled.CompletedAt != nil {
		t.Errorf("expected item reopened, got %+v", toggled)
	}
}

func TestUpdateAndDeleteItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewChecklistService(db)
	user := testutil.CreateTestUser(t, db)
	wedding := testutil.CreateTestWedding(t, db, user.ID)
	item := testutil.CreateTestChecklistItem(t, db, wedding.ID)

	updated, err := svc.UpdateItem(user.ID, wedding.ID, item.ID, ChecklistInput{Title: "Taste menu", Category: "catering"})
	testutil.AssertNoError(t, err)
	if updated.Title != "Taste menu" || updated.Category != "catering" {
		t.Errorf("unexpected update %+v", updated)
	}

	err = svc.DeleteItem(user.ID, wedding.ID, item.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetItemByID(user.ID, wedding.ID, item.ID)
	testutil.AssertAppError(t, err, "CHECKLIST_ITEM_NOT_FOUND")
}
