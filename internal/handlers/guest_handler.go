package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

// GuestHandler handles guest list requests.
type GuestHandler struct {
	guestService services.GuestServicer
	auditService services.AuditServicer
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(guestService services.GuestServicer, auditService services.AuditServicer) *GuestHandler {
	return &GuestHandler{guestService: guestService, auditService: auditService}
}

// GuestRequest represents the request payload for creating or replacing a guest party.
// Adults defaults to 1 when omitted.
type GuestRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	Side     string `json:"side" binding:"omitempty,guest_side"`
	Group    string `json:"group" binding:"max=100"`
	Adults   *int   `json:"adults" binding:"omitempty,min=0,max=100"`
	Children int    `json:"children" binding:"min=0,max=100"`
	RSVP     string `json:"rsvp" binding:"omitempty,rsvp_status"`
	Notes    string `json:"notes" binding:"max=2000"`
}

func (r GuestRequest) input() services.GuestInput {
	adults := 1
	if r.Adults != nil {
		adults = *r.Adults
	}
	return services.GuestInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Side:     models.GuestSide(r.Side),
		Group:    r.Group,
		Adults:   adults,
		Children: r.Children,
		RSVP:     models.RSVPStatus(r.RSVP),
		Notes:    r.Notes,
	}
}

func guestChanges(g *models.Guest) map[string]interface{} {
	return map[string]interface{}{
		"name":     g.Name,
		"adults":   g.Adults,
		"children": g.Children,
		"rsvp":     g.RSVP,
	}
}

// guestScope resolves the caller, the wedding and the :guestId path parameter.
func guestScope(c *gin.Context) (userID, weddingID, guestID string, err error) {
	userID, weddingID, err = weddingScope(c)
	if err != nil {
		return "", "", "", err
	}
	guestID, err = parsePathID(c, "guestId")
	if err != nil {
		return "", "", "", err
	}
	return userID, weddingID, guestID, nil
}

// CreateGuest handles adding a party to the guest list.
// @Summary     Create a guest
// @Description Add a guest party to a wedding
// @Tags        guests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Wedding ID"
// @Param       request body GuestRequest true "Guest details"
// @Success     201 {object} models.Guest "Guest created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests [post]
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	guest, err := h.guestService.CreateGuest(userID, weddingID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceGuest, guest.ID, c.ClientIP(), guestChanges(guest))

	c.JSON(http.StatusCreated, gin.H{"guest": guest})
}

// GetGuests handles listing the guest list.
// @Summary     Get guests
// @Description Get a paginated guest list ordered by name
// @Tags        guests
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wedding ID"
// @Param       rsvp      query string false "Filter by RSVP (pending/accepted/declined)"
// @Param       side      query string false "Filter by side (bride/groom/both)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort key (name, side, group, rsvp, created_at); prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.Guest] "Paginated guests"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests [get]
func (h *GuestHandler) GetGuests(c *gin.Context) {
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

	var filter services.GuestFilter
	if v := c.Query("rsvp"); v != "" {
		rsvp := models.RSVPStatus(v)
		switch rsvp {
		case models.RSVPPending, models.RSVPAccepted, models.RSVPDeclined:
			filter.RSVP = &rsvp
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "rsvp must be pending, accepted or declined"))
			return
		}
	}
	if v := c.Query("side"); v != "" {
		side := models.GuestSide(v)
		switch side {
		case models.GuestSideBride, models.GuestSideGroom, models.GuestSideBoth:
			filter.Side = &side
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "side must be bride, groom or both"))
			return
		}
	}

	result, err := h.guestService.GetWeddingGuests(userID, weddingID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHeadcount returns the aggregated guest counts.
// @Summary     Get headcount
// @Description Count parties, adults and children, overall and excluding declined guests
// @Tags        guests
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {object} services.GuestHeadcount "Headcount"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests/headcount [get]
func (h *GuestHandler) GetHeadcount(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	headcount, err := h.guestService.GetHeadcount(userID, weddingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"headcount": headcount})
}

// GetGuestByID handles retrieving a single guest party.
// @Summary     Get guest
// @Description Get a single guest party
// @Tags        guests
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string true "Wedding ID"
// @Param       guestId path string true "Guest ID"
// @Success     200 {object} models.Guest "Guest details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or guest not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests/{guestId} [get]
func (h *GuestHandler) GetGuestByID(c *gin.Context) {
	userID, weddingID, guestID, err := guestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	guest, err := h.guestService.GetGuestByID(userID, weddingID, guestID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"guest": guest})
}

// UpdateGuest handles replacing a guest party.
// @Summary     Update guest
// @Description Replace every field of a guest party
// @Tags        guests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Wedding ID"
// @Param       guestId path string       true "Guest ID"
// @Param       request body GuestRequest true "Guest details"
// @Success     200 {object} models.Guest "Updated guest"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or guest not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests/{guestId} [put]
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	userID, weddingID, guestID, err := guestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	guest, err := h.guestService.UpdateGuest(userID, weddingID, guestID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceGuest, guest.ID, c.ClientIP(), guestChanges(guest))

	c.JSON(http.StatusOK, gin.H{"guest": guest})
}

// DeleteGuest handles removing a guest party.
// @Summary     Delete guest
// @Description Remove a guest party from the list
// @Tags        guests
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string true "Wedding ID"
// @Param       guestId path string true "Guest ID"
// @Success     200 {object} MessageResponse "Guest deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or guest not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/guests/{guestId} [delete]
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	userID, weddingID, guestID, err := guestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.guestService.DeleteGuest(userID, weddingID, guestID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceGuest, guestID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Guest deleted successfully"})
}
