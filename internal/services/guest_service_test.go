package services

import (
	"testing"

	"wedplan/internal/models"
	"wedplan/internal/pagination"
	"wedplan/internal/testutil"
)

func TestCreateGuest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewGuestService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		guest, err := svc.CreateGuest(user.ID, wedding.ID, GuestInput{Name: "Cohen family", Adults: 2, Children: 2})
		testutil.AssertNoError(t, err)

		if guest.RSVP != models.RSVPPending || guest.Side != models.GuestSideBoth {
			t.Errorf("unexpected defaults rsvp=%s side=%s", guest.RSVP, guest.Side)
		}
	})

	t.Run("zero_adults_is_kept", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewGuestService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		guest, err := svc.CreateGuest(user.ID, wedding.ID, GuestInput{Name: "Kids table", Adults: 0, Children: 4})
		testutil.AssertNoError(t, err)

		var stored models.Guest
		if err := db.Where("id = ?", guest.ID).First(&stored).Error; err != nil {
			t.Fatalf("failed to reload guest: %v", err)
		}
		if stored.Adults != 0 || stored.Children != 4 {
			t.Errorf("expected 0 adults and 4 children, got %d/%d", stored.Adults, stored.Children)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewGuestService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		_, err := svc.CreateGuest(user.ID, wedding.ID, GuestInput{Name: ""})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateGuest(user.ID, wedding.ID, GuestInput{Name: "Neg", Children: -1})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetWeddingGuests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewGuestService(db)
	user := testutil.CreateTestUser(t, db)
	wedding := testutil.CreateTestWedding(t, db, user.ID)

	testutil.CreateTestGuest(t, db, wedding.ID, 2, 0, models.RSVPAccepted)
	testutil.CreateTestGuest(t, db, wedding.ID, 1, 0, models.RSVPDeclined)
	testutil.CreateTestGuest(t, db, wedding.ID, 2, 1, models.RSVPPending)

	page := pagination.PageRequest{Page: 1, PageSize: 20}

	result, err := svc.GetWeddingGuests(user.ID, wedding.ID, page, GuestFilter{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 3 {
		t.Errorf("expected 3 guests, got %d", result.TotalItems)
	}

	declined := models.RSVPDeclined
	result, err = svc.GetWeddingGuests(user.ID, wedding.ID, page, GuestFilter{RSVP: &declined})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 declined guest, got %d", result.TotalItems)
	}

	groom := models.GuestSideGroom
	result, err = svc.GetWeddingGuests(user.ID, wedding.ID, page, GuestFilter{Side: &groom})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 0 {
		t.Errorf("expected no groom-side guests, got %d", result.TotalItems)
	}

	page.Sort = "-name"
	result, err = svc.GetWeddingGuests(user.ID, wedding.ID, page, GuestFilter{})
	testutil.AssertNoError(t, err)
	for i := 1; i < len(result.Data); i++ {
		if result.Data[i-1].Name < result.Data[i].Name {
			t.Errorf("expected names descending, got %q before %q", result.Data[i-1].Name, result.Data[i].Name)
		}
	}
}

func TestUpdateAndDeleteGuest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewGuestService(db)
	user := testutil.CreateTestUser(t, db)
	wedding := testutil.CreateTestWedding(t, db, user.ID)
	guest := testutil.CreateTestGuest(t, db, wedding.ID, 2, 0, models.RSVPPending)

	updated, err := svc.UpdateGuest(user.ID, wedding.ID, guest.ID, GuestInput{
		Name:   guest.Name,
		Side:   models.GuestSideBride,
		Adults: 1,
		RSVP:   models.RSVPAccepted,
	})
	testutil.AssertNoError(t, err)
	if updated.Adults != 1 || updated.RSVP != models.RSVPAccepted || updated.Side != models.GuestSideBride {
		t.Errorf("unexpected update result %+v", updated)
	}

	err = svc.DeleteGuest(user.ID, wedding.ID, guest.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetGuestByID(user.ID, wedding.ID, guest.ID)
	testutil.AssertAppError(t, err, "GUEST_NOT_FOUND")
}

func TestGetHeadcount(t *testing.T) {
	t.Run("aggregates_by_rsvp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewGuestService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		testutil.CreateTestGuest(t, db, wedding.ID, 2, 2, models.RSVPAccepted)
		testutil.CreateTestGuest(t, db, wedding.ID, 2, 1, models.RSVPPending)
		testutil.CreateTestGuest(t, db, wedding.ID, 1, 3, models.RSVPDeclined)

		hc, err := svc.GetHeadcount(user.ID, wedding.ID)
		testutil.AssertNoError(t, err)

		if hc.Parties != 3 || hc.Adults != 5 || hc.Children != 6 || hc.Total != 11 {
			t.Errorf("unexpected totals %+v", hc)
		}
		if hc.ExpectedAdults != 4 || hc.ExpectedChildren != 3 || hc.ExpectedTotal != 7 {
			t.Errorf("unexpected expected counts %+v", hc)
		}
		if hc.ByRSVP[models.RSVPDeclined] != 4 || hc.ByRSVP[models.RSVPAccepted] != 4 {
			t.Errorf("unexpected by-rsvp counts %+v", hc.ByRSVP)
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewGuestService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		hc, err := svc.GetHeadcount(user.ID, wedding.ID)
		testutil.AssertNoError(t, err)
		if hc.Total != 0 || hc.ByRSVP[models.RSVPPending] != 0 {
			t.Errorf("expected zero headcount, got %+v", hc)
		}
	})
}
