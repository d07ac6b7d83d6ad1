package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

func setupVendorRouter(svc *mockVendorService, audit *mockAuditService) *gin.Engine {
	h := NewVendorHandler(svc, audit)
	r := gin.New()
	r.Use(injectUserID(testUserID))
	r.POST("/weddings/:id/vendors", h.CreateVendor)
	r.GET("/weddings/:id/vendors", h.GetVendors)
	r.GET("/weddings/:id/vendors/:vendorId", h.GetVendorByID)
	r.PUT("/weddings/:id/vendors/:vendorId", h.UpdateVendor)
	r.DELETE("/weddings/:id/vendors/:vendorId", h.DeleteVendor)
	return r
}

func TestVendorHandler_CreateVendor(t *testing.T) {
	t.Run("returns 201 with amounts as strings", func(t *testing.T) {
		var got services.VendorInput
		svc := &mockVendorService{
			createVendorFn: func(_, weddingID string, input services.VendorInput) (*models.Vendor, error) {
				got = input
				return &models.Vendor{
					Base:        models.Base{ID: testObjectID},
					WeddingID:   weddingID,
					Name:        input.Name,
					Status:      budget.VendorStatusCommitted,
					FinalAmount: input.FinalAmount,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupVendorRouter(svc, audit)

		rec := doRequest(r, "POST", weddingPath("/vendors"),
			`{"name":"DJ Ori","category":"music","status":"התחייב","final_amount":"9000.50","deposit":2000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Status != budget.VendorStatus("התחייב") {
			t.Errorf("expected raw label to reach the service, got %q", got.Status)
		}
		if got.Deposit == nil || !got.Deposit.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected deposit 2000, got %v", got.Deposit)
		}
		vendor := parseJSON(t, rec)["vendor"].(map[string]interface{})
		if vendor["final_amount"] != "9000.5" {
			t.Errorf("expected final_amount \"9000.5\", got %v", vendor["final_amount"])
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE vendor" {
			t.Errorf("unexpected audit entries %v", audit.actions)
		}
	})

	t.Run("returns 400 on unknown status", func(t *testing.T) {
		r := setupVendorRouter(&mockVendorService{}, &mockAuditService{})

		rec := doRequest(r, "POST", weddingPath("/vendors"), `{"name":"DJ","status":"maybe"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 without a name", func(t *testing.T) {
		r := setupVendorRouter(&mockVendorService{}, &mockAuditService{})

		rec := doRequest(r, "POST", weddingPath("/vendors"), `{"category":"music"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVendorHandler_GetVendors(t *testing.T) {
	t.Run("passes filters to the service", func(t *testing.T) {
		var got services.VendorFilter
		svc := &mockVendorService{
			getWeddingVendorsFn: func(_, _ string, _ pagination.PageRequest, filter services.VendorFilter) (*pagination.PageResponse[models.Vendor], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Vendor{{Name: "DJ Ori"}}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupVendorRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", weddingPath("/vendors?status=committed&category=music&match=dj*"), "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Status == nil || *got.Status != budget.VendorStatusCommitted {
			t.Errorf("expected committed status filter, got %v", got.Status)
		}
		if got.Category != "music" || got.Match != "dj*" {
			t.Errorf("unexpected filter %+v", got)
		}
	})

	t.Run("returns 400 on unknown status filter", func(t *testing.T) {
		r := setupVendorRouter(&mockVendorService{}, &mockAuditService{})

		rec := doRequest(r, "GET", weddingPath("/vendors?status=signed"), "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVendorHandler_ByID(t *testing.T) {
	t.Run("returns 404 for unknown vendors", func(t *testing.T) {
		svc := &mockVendorService{
			getVendorByIDFn: func(_, _, _ string) (*models.Vendor, error) {
				return nil, apperrors.ErrVendorNotFound
			},
		}
		r := setupVendorRouter(svc, &mockAuditService{})

		rec := doRequest(r, "GET", weddingPath("/vendors/"+testObjectID), "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VENDOR_NOT_FOUND")
	})

	t.Run("returns 400 for a malformed vendor ID", func(t *testing.T) {
		r := setupVendorRouter(&mockVendorService{}, &mockAuditService{})

		rec := doRequest(r, "GET", weddingPath("/vendors/42"), "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("updates a vendor", func(t *testing.T) {
		svc := &mockVendorService{
			updateVendorFn: func(_, _, vendorID string, input services.VendorInput) (*models.Vendor, error) {
				return &models.Vendor{Base: models.Base{ID: vendorID}, Name: input.Name, Status: input.Status}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupVendorRouter(svc, audit)

		rec := doRequest(r, "PUT", weddingPath("/vendors/"+testObjectID), `{"name":"Florist","status":"proposal"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(audit.actions) != 1 || audit.actions[0] != "UPDATE vendor" {
			t.Errorf("unexpected audit entries %v", audit.actions)
		}
	})

	t.Run("deletes a vendor", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupVendorRouter(&mockVendorService{}, audit)

		rec := doRequest(r, "DELETE", weddingPath("/vendors/"+testObjectID), "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "DELETE vendor" {
			t.Errorf("unexpected audit entries %v", audit.actions)
		}
	})
}
