package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

// WeddingHandler handles wedding and participant requests.
type WeddingHandler struct {
	weddingService services.WeddingServicer
	auditService   services.AuditServicer
}

// NewWeddingHandler creates a new WeddingHandler.
func NewWeddingHandler(weddingService services.WeddingServicer, auditService services.AuditServicer) *WeddingHandler {
	return &WeddingHandler{weddingService: weddingService, auditService: auditService}
}

// CreateWeddingRequest represents the request payload for creating a wedding.
type CreateWeddingRequest struct {
	Title      string     `json:"title" binding:"required,min=1,max=200"`
	PartnerOne string     `json:"partner_one" binding:"max=100"`
	PartnerTwo string     `json:"partner_two" binding:"max=100"`
	EventDate  *time.Time `json:"event_date"`
	Location   string     `json:"location" binding:"max=255"`
	Currency   string     `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateWeddingRequest represents the request payload for updating a wedding.
// Omitted fields keep their stored value.
type UpdateWeddingRequest struct {
	Title      string     `json:"title" binding:"omitempty,min=1,max=200"`
	PartnerOne string     `json:"partner_one" binding:"max=100"`
	PartnerTwo string     `json:"partner_two" binding:"max=100"`
	EventDate  *time.Time `json:"event_date"`
	Location   string     `json:"location" binding:"max=255"`
	Currency   string     `json:"currency" binding:"omitempty,iso4217"`
}

// AddParticipantRequest represents the request payload for inviting a participant.
type AddParticipantRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateWedding handles the creation of a new wedding.
// @Summary     Create a wedding
// @Description Create a new wedding. The caller becomes its owner.
// @Tags        weddings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWeddingRequest true "Wedding details"
// @Success     201 {object} models.Wedding "Wedding created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings [post]
func (h *WeddingHandler) CreateWedding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	wedding, err := h.weddingService.CreateWedding(userID, services.WeddingInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceWedding, wedding.ID, c.ClientIP(),
		map[string]interface{}{"title": wedding.Title, "currency": wedding.Currency})

	c.JSON(http.StatusCreated, gin.H{"wedding": wedding})
}

// GetWeddings handles listing the weddings the caller belongs to.
// @Summary     Get weddings
// @Description Get a paginated list of weddings the authenticated user owns or participates in
// @Tags        weddings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Param       sort query string false "Sort key (title, event_date, created_at); prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.Wedding] "Paginated weddings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings [get]
func (h *WeddingHandler) GetWeddings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	result, err := h.weddingService.GetUserWeddings(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWeddingByID handles retrieving a single wedding.
// @Summary     Get wedding
// @Description Get a wedding the authenticated user belongs to
// @Tags        weddings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {object} models.Wedding "Wedding details"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id} [get]
func (h *WeddingHandler) GetWeddingByID(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wedding, err := h.weddingService.GetWeddingByID(userID, weddingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wedding": wedding})
}

// UpdateWedding handles updating a wedding.
// @Summary     Update wedding
// @Description Update the details of a wedding. Any member may edit.
// @Tags        weddings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Wedding ID"
// @Param       request body UpdateWeddingRequest true "Updated wedding details"
// @Success     200 {object} models.Wedding "Updated wedding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id} [put]
func (h *WeddingHandler) UpdateWedding(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateWeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	wedding, err := h.weddingService.UpdateWedding(userID, weddingID, services.WeddingInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceWedding, wedding.ID, c.ClientIP(),
		map[string]interface{}{"title": wedding.Title})

	c.JSON(http.StatusOK, gin.H{"wedding": wedding})
}

// DeleteWedding handles deleting a wedding.
// @Summary     Delete wedding
// @Description Delete a wedding and revoke every participant. Owner only.
// @Tags        weddings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {object} MessageResponse "Wedding deleted"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id} [delete]
func (h *WeddingHandler) DeleteWedding(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.weddingService.DeleteWedding(userID, weddingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceWedding, weddingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Wedding deleted successfully"})
}

// GetParticipants lists the members of a wedding.
// @Summary     List participants
// @Description List the owner and participants of a wedding, owner first
// @Tags        participants
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {array}  models.WeddingMember "Participants"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/participants [get]
func (h *WeddingHandler) GetParticipants(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.weddingService.ListParticipants(userID, weddingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": members})
}

// AddParticipant invites a registered user to a wedding.
// @Summary     Add participant
// @Description Give a registered user access to the wedding. Owner only.
// @Tags        participants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Wedding ID"
// @Param       request body AddParticipantRequest true "Participant email"
// @Success     201 {object} models.WeddingMember "Participant added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Wedding or user not found"
// @Failure     409 {object} ErrorResponse "Already a participant"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/participants [post]
func (h *WeddingHandler) AddParticipant(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	member, err := h.weddingService.AddParticipant(userID, weddingID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceWeddingMember, member.ID, c.ClientIP(),
		map[string]interface{}{"wedding_id": weddingID, "user_id": member.UserID})

	c.JSON(http.StatusCreated, gin.H{"participant": member})
}

// RemoveParticipant revokes a participant's access.
// @Summary     Remove participant
// @Description Revoke a participant's access to the wedding. Owner only; the owner cannot be removed.
// @Tags        participants
// @Produce     json
// @Security    BearerAuth
// @Param       id     path string true "Wedding ID"
// @Param       userId path string true "Participant user ID"
// @Success     200 {object} MessageResponse "Participant removed"
// @Failure     400 {object} ErrorResponse "Invalid ID or owner removal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Wedding or participant not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/participants/{userId} [delete]
func (h *WeddingHandler) RemoveParticipant(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	participantID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.weddingService.RemoveParticipant(userID, weddingID, participantID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceWeddingMember, participantID, c.ClientIP(),
		map[string]interface{}{"wedding_id": weddingID})

	c.JSON(http.StatusOK, MessageResponse{Message: "Participant removed successfully"})
}
