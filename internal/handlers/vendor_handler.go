package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

// VendorHandler handles vendor-related requests.
type VendorHandler struct {
	vendorService services.VendorServicer
	auditService  services.AuditServicer
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService services.VendorServicer, auditService services.AuditServicer) *VendorHandler {
	return &VendorHandler{vendorService: vendorService, auditService: auditService}
}

// VendorRequest represents the request payload for creating or replacing a vendor.
// Status defaults to open and accepts the canonical value or the Hebrew label.
type VendorRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Category     string           `json:"category" binding:"max=100"`
	ContactName  string           `json:"contact_name" binding:"max=100"`
	ContactPhone string           `json:"contact_phone" binding:"max=50"`
	ContactEmail string           `json:"contact_email" binding:"omitempty,email"`
	Status       string           `json:"status" binding:"omitempty,vendor_status"`
	FinalAmount  *decimal.Decimal `json:"final_amount" swaggertype:"string"`
	Deposit      *decimal.Decimal `json:"deposit" swaggertype:"string"`
	Notes        string           `json:"notes" binding:"max=2000"`
}

func (r VendorRequest) input() services.VendorInput {
	return services.VendorInput{
		Name:         r.Name,
		Category:     r.Category,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Status:       budget.VendorStatus(r.Status),
		FinalAmount:  r.FinalAmount,
		Deposit:      r.Deposit,
		Notes:        r.Notes,
	}
}

func (r VendorRequest) changes() map[string]interface{} {
	changes := map[string]interface{}{"name": r.Name, "status": r.Status}
	if r.FinalAmount != nil {
		changes["final_amount"] = r.FinalAmount.String()
	}
	if r.Deposit != nil {
		changes["deposit"] = r.Deposit.String()
	}
	return changes
}

// vendorScope resolves the caller, the wedding and the :vendorId path parameter.
func vendorScope(c *gin.Context) (userID, weddingID, vendorID string, err error) {
	userID, weddingID, err = weddingScope(c)
	if err != nil {
		return "", "", "", err
	}
	vendorID, err = parsePathID(c, "vendorId")
	if err != nil {
		return "", "", "", err
	}
	return userID, weddingID, vendorID, nil
}

// CreateVendor handles the creation of a new vendor.
// @Summary     Create a vendor
// @Description Add a vendor to a wedding
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Wedding ID"
// @Param       request body VendorRequest true "Vendor details"
// @Success     201 {object} models.Vendor "Vendor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	vendor, err := h.vendorService.CreateVendor(userID, weddingID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceVendor, vendor.ID, c.ClientIP(), req.changes())

	c.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

// GetVendors handles listing the vendors of a wedding.
// @Summary     Get vendors
// @Description Get a paginated list of a wedding's vendors
// @Tags        vendors
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wedding ID"
// @Param       status    query string false "Filter by status (open/proposal/committed)"
// @Param       category  query string false "Filter by category (case-insensitive)"
// @Param       match     query string false "Glob pattern on the vendor name, e.g. dj*"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort key (name, category, status, created_at); prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.Vendor] "Paginated vendors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/vendors [get]
func (h *VendorHandler) GetVendors(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.VendorFilter{
		Category: c.Query("category"),
		Match:    c.Query("match"),
	}
	if v := c.Query("status"); v != "" {
		status, ok := budget.ParseVendorStatus(v)
		if !ok {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be open, proposal or committed"))
			return
		}
		filter.Status = &status
	}

	result, err := h.vendorService.GetWeddingVendors(userID, weddingID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVendorByID handles retrieving a single vendor.
// @Summary     Get vendor
// @Description Get a single vendor of a wedding
// @Tags        vendors
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Wedding ID"
// @Param       vendorId path string true "Vendor ID"
// @Success     200 {object} models.Vendor "Vendor details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/vendors/{vendorId} [get]
func (h *VendorHandler) GetVendorByID(c *gin.Context) {
	userID, weddingID, vendorID, err := vendorScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vendor, err := h.vendorService.GetVendorByID(userID, weddingID, vendorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// UpdateVendor handles replacing a vendor.
// @Summary     Update vendor
// @Description Replace every field of a vendor
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string        true "Wedding ID"
// @Param       vendorId path string        true "Vendor ID"
// @Param       request  body VendorRequest true "Vendor details"
// @Success     200 {object} models.Vendor "Updated vendor"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/vendors/{vendorId} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	userID, weddingID, vendorID, err := vendorScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	vendor, err := h.vendorService.UpdateVendor(userID, weddingID, vendorID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceVendor, vendor.ID, c.ClientIP(), req.changes())

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// DeleteVendor handles deleting a vendor.
// @Summary     Delete vendor
// @Description Delete a vendor of a wedding
// @Tags        vendors
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Wedding ID"
// @Param       vendorId path string true "Vendor ID"
// @Success     200 {object} MessageResponse "Vendor deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/vendors/{vendorId} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	userID, weddingID, vendorID, err := vendorScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.vendorService.DeleteVendor(userID, weddingID, vendorID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceVendor, vendorID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Vendor deleted successfully"})
}
