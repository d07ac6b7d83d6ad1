package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"wedplan/internal/budget"
	"wedplan/internal/logger"
	"wedplan/internal/middleware"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
	"wedplan/internal/services"
	"wedplan/internal/validator"
)

const (
	testUserID    = "0190f3d2-6c3b-7a11-8b2c-000000000001"
	testWeddingID = "0190f3d2-6c3b-7a11-8b2c-000000000002"
	testObjectID  = "0190f3d2-6c3b-7a11-8b2c-000000000003"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID string, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

type mockWeddingService struct {
	createWeddingFn     func(userID string, input services.WeddingInput) (*models.Wedding, error)
	getUserWeddingsFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Wedding], error)
	getWeddingByIDFn    func(userID, weddingID string) (*models.Wedding, error)
	updateWeddingFn     func(userID, weddingID string, input services.WeddingInput) (*models.Wedding, error)
	deleteWeddingFn     func(userID, weddingID string) error
	listParticipantsFn  func(userID, weddingID string) ([]models.WeddingMember, error)
	addParticipantFn    func(userID, weddingID, email string) (*models.WeddingMember, error)
	removeParticipantFn func(userID, weddingID, participantID string) error
}

func (m *mockWeddingService) CreateWedding(userID string, input services.WeddingInput) (*models.Wedding, error) {
	if m.createWeddingFn != nil {
		return m.createWeddingFn(userID, input)
	}
	return &models.Wedding{}, nil
}

func (m *mockWeddingService) GetUserWeddings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Wedding], error) {
	if m.getUserWeddingsFn != nil {
		return m.getUserWeddingsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Wedding{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockWeddingService) GetWeddingByID(userID, weddingID string) (*models.Wedding, error) {
	if m.getWeddingByIDFn != nil {
		return m.getWeddingByIDFn(userID, weddingID)
	}
	return &models.Wedding{}, nil
}

func (m *mockWeddingService) UpdateWedding(userID, weddingID string, input services.WeddingInput) (*models.Wedding, error) {
	if m.updateWeddingFn != nil {
		return m.updateWeddingFn(userID, weddingID, input)
	}
	return &models.Wedding{}, nil
}

func (m *mockWeddingService) DeleteWedding(userID, weddingID string) error {
	if m.deleteWeddingFn != nil {
		return m.deleteWeddingFn(userID, weddingID)
	}
	return nil
}

func (m *mockWeddingService) RequireMember(_, _ string) (*models.WeddingMember, error) {
	return &models.WeddingMember{}, nil
}

func (m *mockWeddingService) RequireOwner(_, _ string) error {
	return nil
}

func (m *mockWeddingService) ListParticipants(userID, weddingID string) ([]models.WeddingMember, error) {
	if m.listParticipantsFn != nil {
		return m.listParticipantsFn(userID, weddingID)
	}
	return []models.WeddingMember{}, nil
}

func (m *mockWeddingService) AddParticipant(userID, weddingID, email string) (*models.WeddingMember, error) {
	if m.addParticipantFn != nil {
		return m.addParticipantFn(userID, weddingID, email)
	}
	return &models.WeddingMember{}, nil
}

func (m *mockWeddingService) RemoveParticipant(userID, weddingID, participantID string) error {
	if m.removeParticipantFn != nil {
		return m.removeParticipantFn(userID, weddingID, participantID)
	}
	return nil
}

type mockBudgetService struct {
	getSettingsFn    func(userID, weddingID string) (*models.BudgetSettings, error)
	updateSettingsFn func(userID, weddingID string, input services.BudgetSettingsInput) (*models.BudgetSettings, error)
	getSummaryFn     func(userID, weddingID string) (*budget.Summary, error)
}

func (m *mockBudgetService) GetSettings(userID, weddingID string) (*models.BudgetSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(userID, weddingID)
	}
	return models.DefaultBudgetSettings(weddingID), nil
}

func (m *mockBudgetService) UpdateSettings(userID, weddingID string, input services.BudgetSettingsInput) (*models.BudgetSettings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(userID, weddingID, input)
	}
	return models.DefaultBudgetSettings(weddingID), nil
}

func (m *mockBudgetService) GetSummary(userID, weddingID string) (*budget.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, weddingID)
	}
	return &budget.Summary{}, nil
}

type mockVendorService struct {
	createVendorFn      func(userID, weddingID string, input services.VendorInput) (*models.Vendor, error)
	getWeddingVendorsFn func(userID, weddingID string, page pagination.PageRequest, filter services.VendorFilter) (*pagination.PageResponse[models.Vendor], error)
	getVendorByIDFn     func(userID, weddingID, vendorID string) (*models.Vendor, error)
	updateVendorFn      func(userID, weddingID, vendorID string, input services.VendorInput) (*models.Vendor, error)
	deleteVendorFn      func(userID, weddingID, vendorID string) error
}

func (m *mockVendorService) CreateVendor(userID, weddingID string, input services.VendorInput) (*models.Vendor, error) {
	if m.createVendorFn != nil {
		return m.createVendorFn(userID, weddingID, input)
	}
	return &models.Vendor{}, nil
}

func (m *mockVendorService) GetWeddingVendors(userID, weddingID string, page pagination.PageRequest, filter services.VendorFilter) (*pagination.PageResponse[models.Vendor], error) {
	if m.getWeddingVendorsFn != nil {
		return m.getWeddingVendorsFn(userID, weddingID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Vendor{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockVendorService) GetVendorByID(userID, weddingID, vendorID string) (*models.Vendor, error) {
	if m.getVendorByIDFn != nil {
		return m.getVendorByIDFn(userID, weddingID, vendorID)
	}
	return &models.Vendor{}, nil
}

func (m *mockVendorService) UpdateVendor(userID, weddingID, vendorID string, input services.VendorInput) (*models.Vendor, error) {
	if m.updateVendorFn != nil {
		return m.updateVendorFn(userID, weddingID, vendorID, input)
	}
	return &models.Vendor{}, nil
}

func (m *mockVendorService) DeleteVendor(userID, weddingID, vendorID string) error {
	if m.deleteVendorFn != nil {
		return m.deleteVendorFn(userID, weddingID, vendorID)
	}
	return nil
}

type mockGuestService struct {
	createGuestFn      func(userID, weddingID string, input services.GuestInput) (*models.Guest, error)
	getWeddingGuestsFn func(userID, weddingID string, page pagination.PageRequest, filter services.GuestFilter) (*pagination.PageResponse[models.Guest], error)
	getGuestByIDFn     func(userID, weddingID, guestID string) (*models.Guest, error)
	updateGuestFn      func(userID, weddingID, guestID string, input services.GuestInput) (*models.Guest, error)
	deleteGuestFn      func(userID, weddingID, guestID string) error
	getHeadcountFn     func(userID, weddingID string) (*services.GuestHeadcount, error)
}

func (m *mockGuestService) CreateGuest(userID, weddingID string, input services.GuestInput) (*models.Guest, error) {
	if m.createGuestFn != nil {
		return m.createGuestFn(userID, weddingID, input)
	}
	return &models.Guest{}, nil
}

func (m *mockGuestService) GetWeddingGuests(userID, weddingID string, page pagination.PageRequest, filter services.GuestFilter) (*pagination.PageResponse[models.Guest], error) {
	if m.getWeddingGuestsFn != nil {
		return m.getWeddingGuestsFn(userID, weddingID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Guest{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockGuestService) GetGuestByID(userID, weddingID, guestID string) (*models.Guest, error) {
	if m.getGuestByIDFn != nil {
		return m.getGuestByIDFn(userID, weddingID, guestID)
	}
	return &models.Guest{}, nil
}

func (m *mockGuestService) UpdateGuest(userID, weddingID, guestID string, input services.GuestInput) (*models.Guest, error) {
	if m.updateGuestFn != nil {
		return m.updateGuestFn(userID, weddingID, guestID, input)
	}
	return &models.Guest{}, nil
}

func (m *mockGuestService) DeleteGuest(userID, weddingID, guestID string) error {
	if m.deleteGuestFn != nil {
		return m.deleteGuestFn(userID, weddingID, guestID)
	}
	return nil
}

func (m *mockGuestService) GetHeadcount(userID, weddingID string) (*services.GuestHeadcount, error) {
	if m.getHeadcountFn != nil {
		return m.getHeadcountFn(userID, weddingID)
	}
	return &services.GuestHeadcount{}, nil
}

type mockChecklistService struct {
	createItemFn          func(userID, weddingID string, input services.ChecklistInput) (*models.ChecklistItem, error)
	getWeddingChecklistFn func(userID, weddingID string, page pagination.PageRequest, done *bool) (*pagination.PageResponse[models.ChecklistItem], error)
	getItemByIDFn         func(userID, weddingID, itemID string) (*models.ChecklistItem, error)
	updateItemFn          func(userID, weddingID, itemID string, input services.ChecklistInput) (*models.ChecklistItem, error)
	deleteItemFn          func(userID, weddingID, itemID string) error
	toggleItemFn          func(userID, weddingID, itemID string) (*models.ChecklistItem, error)
}

func (m *mockChecklistService) CreateItem(userID, weddingID string, input services.ChecklistInput) (*models.ChecklistItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(userID, weddingID, input)
	}
	return &models.ChecklistItem{}, nil
}

func (m *mockChecklistService) GetWeddingChecklist(userID, weddingID string, page pagination.PageRequest, done *bool) (*pagination.PageResponse[models.ChecklistItem], error) {
	if m.getWeddingChecklistFn != nil {
		return m.getWeddingChecklistFn(userID, weddingID, page, done)
	}
	resp := pagination.NewPageResponse([]models.ChecklistItem{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockChecklistService) GetItemByID(userID, weddingID, itemID string) (*models.ChecklistItem, error) {
	if m.getItemByIDFn != nil {
		return m.getItemByIDFn(userID, weddingID, itemID)
	}
	return &models.ChecklistItem{}, nil
}

func (m *mockChecklistService) UpdateItem(userID, weddingID, itemID string, input services.ChecklistInput) (*models.ChecklistItem, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(userID, weddingID, itemID, input)
	}
	return &models.ChecklistItem{}, nil
}

func (m *mockChecklistService) DeleteItem(userID, weddingID, itemID string) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(userID, weddingID, itemID)
	}
	return nil
}

func (m *mockChecklistService) ToggleItem(userID, weddingID, itemID string) (*models.ChecklistItem, error) {
	if m.toggleItemFn != nil {
		return m.toggleItemFn(userID, weddingID, itemID)
	}
	return &models.ChecklistItem{}, nil
}

type mockVenueService struct {
	createVenueFn      func(userID, weddingID string, input services.VenueInput) (*models.Venue, error)
	getWeddingVenuesFn func(userID, weddingID string, page pagination.PageRequest) (*pagination.PageResponse[models.Venue], error)
	getVenueByIDFn     func(userID, weddingID, venueID string) (*models.Venue, error)
	updateVenueFn      func(userID, weddingID, venueID string, input services.VenueInput) (*models.Venue, error)
	deleteVenueFn      func(userID, weddingID, venueID string) error
	compareVenuesFn    func(userID, weddingID string, guests, children *int) (*services.VenueComparison, error)
}

func (m *mockVenueService) CreateVenue(userID, weddingID string, input services.VenueInput) (*models.Venue, error) {
	if m.createVenueFn != nil {
		return m.createVenueFn(userID, weddingID, input)
	}
	return &models.Venue{}, nil
}

func (m *mockVenueService) GetWeddingVenues(userID, weddingID string, page pagination.PageRequest) (*pagination.PageResponse[models.Venue], error) {
	if m.getWeddingVenuesFn != nil {
		return m.getWeddingVenuesFn(userID, weddingID, page)
	}
	resp := pagination.NewPageResponse([]models.Venue{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockVenueService) GetVenueByID(userID, weddingID, venueID string) (*models.Venue, error) {
	if m.getVenueByIDFn != nil {
		return m.getVenueByIDFn(userID, weddingID, venueID)
	}
	return &models.Venue{}, nil
}

func (m *mockVenueService) UpdateVenue(userID, weddingID, venueID string, input services.VenueInput) (*models.Venue, error) {
	if m.updateVenueFn != nil {
		return m.updateVenueFn(userID, weddingID, venueID, input)
	}
	return &models.Venue{}, nil
}

func (m *mockVenueService) DeleteVenue(userID, weddingID, venueID string) error {
	if m.deleteVenueFn != nil {
		return m.deleteVenueFn(userID, weddingID, venueID)
	}
	return nil
}

func (m *mockVenueService) CompareVenues(userID, weddingID string, guests, children *int) (*services.VenueComparison, error) {
	if m.compareVenuesFn != nil {
		return m.compareVenuesFn(userID, weddingID, guests, children)
	}
	return &services.VenueComparison{Venues: []models.Venue{}}, nil
}

// mockAuditService records the actions it was asked to log.
type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_, action, resourceType, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action+" "+resourceType)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func weddingPath(suffix string) string {
	return "/weddings/" + testWeddingID + suffix
}
