package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"wedplan/internal/models"
	"wedplan/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry_with_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)
		wedding := testutil.CreateTestWedding(t, db, user.ID)

		svc.Log(user.ID, AuditCreate, ResourceWedding, wedding.ID, "127.0.0.1", map[string]interface{}{"title": wedding.Title})

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Action != AuditCreate || entry.ResourceID != wedding.ID {
			t.Errorf("unexpected entry %+v", entry)
		}
		if entry.Changes == "" {
			t.Error("expected changes to be serialized")
		}
	})

	t.Run("nil_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, AuditDelete, ResourceVendor, user.ID, "", nil)

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Changes != "" {
			t.Errorf("expected empty changes, got %q", entry.Changes)
		}
	})
}

func TestEncodeChanges(t *testing.T) {
	tests := []struct {
		name    string
		changes map[string]any
		want    string
	}{
		{name: "nil", changes: nil, want: ""},
		{name: "empty", changes: map[string]any{}, want: ""},
		{name: "money_as_string", changes: map[string]any{"final_amount": decimal.RequireFromString("9000.50")}, want: `{"final_amount":"9000.5"}`},
		{name: "status", changes: map[string]any{"status": "committed"}, want: `{"status":"committed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeChanges(tt.changes)
			testutil.AssertNoError(t, err)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
