package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

// VenueHandler handles venue comparison requests.
type VenueHandler struct {
	venueService services.VenueServicer
	auditService services.AuditServicer
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(venueService services.VenueServicer, auditService services.AuditServicer) *VenueHandler {
	return &VenueHandler{venueService: venueService, auditService: auditService}
}

// VenueRequest represents the request payload for creating or replacing a venue.
// Omitted prices count as zero.
type VenueRequest struct {
	Name                  string          `json:"name" binding:"required,min=1,max=200"`
	ContactName           string          `json:"contact_name" binding:"max=100"`
	ContactPhone          string          `json:"contact_phone" binding:"max=50"`
	BasePrice             decimal.Decimal `json:"base_price" swaggertype:"string"`
	ChildDiscountPercent  decimal.Decimal `json:"child_discount_percent" swaggertype:"string"`
	ChildAgeCutoff        int             `json:"child_age_cutoff" binding:"min=0,max=18"`
	BulkThreshold         int             `json:"bulk_threshold" binding:"min=0"`
	BulkPrice             decimal.Decimal `json:"bulk_price" swaggertype:"string"`
	ReserveThreshold      int             `json:"reserve_threshold" binding:"min=0"`
	ReservePrice          decimal.Decimal `json:"reserve_price" swaggertype:"string"`
	LightingAndSoundPrice decimal.Decimal `json:"lighting_and_sound_price" swaggertype:"string"`
	ExtrasPrice           decimal.Decimal `json:"extras_price" swaggertype:"string"`
	Notes                 string          `json:"notes" binding:"max=2000"`
}

func venueChanges(r VenueRequest) map[string]interface{} {
	return map[string]interface{}{
		"name":              r.Name,
		"base_price":        r.BasePrice.String(),
		"reserve_threshold": r.ReserveThreshold,
		"reserve_price":     r.ReservePrice.String(),
	}
}

// venueScope resolves the caller, the wedding and the :venueId path parameter.
func venueScope(c *gin.Context) (userID, weddingID, venueID string, err error) {
	userID, weddingID, err = weddingScope(c)
	if err != nil {
		return "", "", "", err
	}
	venueID, err = parsePathID(c, "venueId")
	if err != nil {
		return "", "", "", err
	}
	return userID, weddingID, venueID, nil
}

// CreateVenue handles the creation of a venue.
// @Summary     Create a venue
// @Description Add a candidate venue. Its total is priced for the planned guest count.
// @Tags        venues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Wedding ID"
// @Param       request body VenueRequest true "Venue pricing"
// @Success     201 {object} models.Venue "Venue created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues [post]
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	venue, err := h.venueService.CreateVenue(userID, weddingID, services.VenueInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceVenue, venue.ID, c.ClientIP(), venueChanges(req))

	c.JSON(http.StatusCreated, gin.H{"venue": venue})
}

// GetVenues handles listing venues.
// @Summary     Get venues
// @Description Get a paginated list of a wedding's venues
// @Tags        venues
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wedding ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort key (name, base_price, created_at); prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.Venue] "Paginated venues"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues [get]
func (h *VenueHandler) GetVenues(c *gin.Context) {
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

	result, err := h.venueService.GetWeddingVenues(userID, weddingID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompareVenues prices every venue for the same head count.
// @Summary     Compare venues
// @Description Price all venues for the same guests and children, cheapest first. Counts default to the planned guest count and the children of non-declined guests.
// @Tags        venues
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  string true  "Wedding ID"
// @Param       guests   query int    false "Guest count override"
// @Param       children query int    false "Child count override"
// @Success     200 {object} services.VenueComparison "Venue comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues/compare [get]
func (h *VenueHandler) CompareVenues(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	guests, err := parseOptionalInt(c, "guests")
	if err != nil {
		respondWithError(c, err)
		return
	}
	children, err := parseOptionalInt(c, "children")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comparison, err := h.venueService.CompareVenues(userID, weddingID, guests, children)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// GetVenueByID handles retrieving a single venue.
// @Summary     Get venue
// @Description Get a single venue
// @Tags        venues
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string true "Wedding ID"
// @Param       venueId path string true "Venue ID"
// @Success     200 {object} models.Venue "Venue details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or venue not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues/{venueId} [get]
func (h *VenueHandler) GetVenueByID(c *gin.Context) {
	userID, weddingID, venueID, err := venueScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	venue, err := h.venueService.GetVenueByID(userID, weddingID, venueID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

// UpdateVenue handles replacing a venue.
// @Summary     Update venue
// @Description Replace the pricing of a venue and reprice it
// @Tags        venues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Wedding ID"
// @Param       venueId path string       true "Venue ID"
// @Param       request body VenueRequest true "Venue pricing"
// @Success     200 {object} models.Venue "Updated venue"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or venue not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues/{venueId} [put]
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	userID, weddingID, venueID, err := venueScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	venue, err := h.venueService.UpdateVenue(userID, weddingID, venueID, services.VenueInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceVenue, venue.ID, c.ClientIP(), venueChanges(req))

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

// DeleteVenue handles deleting a venue.
// @Summary     Delete venue
// @Description Delete a venue
// @Tags        venues
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string true "Wedding ID"
// @Param       venueId path string true "Venue ID"
// @Success     200 {object} MessageResponse "Venue deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or venue not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/venues/{venueId} [delete]
func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	userID, weddingID, venueID, err := venueScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.venueService.DeleteVenue(userID, weddingID, venueID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceVenue, venueID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Venue deleted successfully"})
}
