package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wedplan/internal/pagination"
	"wedplan/internal/services"
)

// ChecklistHandler handles checklist requests.
type ChecklistHandler struct {
	checklistService services.ChecklistServicer
	auditService     services.AuditServicer
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService services.ChecklistServicer, auditService services.AuditServicer) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, auditService: auditService}
}

// CreateChecklistItemRequest represents the request payload for creating a checklist item.
// Items without a position are appended to the end of the list.
type CreateChecklistItemRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Category    string     `json:"category" binding:"max=100"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position" binding:"omitempty,min=0"`
}

// UpdateChecklistItemRequest represents the request payload for updating a checklist item.
type UpdateChecklistItemRequest struct {
	Title       string     `json:"title" binding:"omitempty,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Category    string     `json:"category" binding:"max=100"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position" binding:"omitempty,min=0"`
}

// itemScope resolves the caller, the wedding and the :itemId path parameter.
func itemScope(c *gin.Context) (userID, weddingID, itemID string, err error) {
	userID, weddingID, err = weddingScope(c)
	if err != nil {
		return "", "", "", err
	}
	itemID, err = parsePathID(c, "itemId")
	if err != nil {
		return "", "", "", err
	}
	return userID, weddingID, itemID, nil
}

// CreateItem handles the creation of a checklist item.
// @Summary     Create a checklist item
// @Description Add a task to the wedding checklist
// @Tags        checklist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Wedding ID"
// @Param       request body CreateChecklistItemRequest true "Checklist item"
// @Success     201 {object} models.ChecklistItem "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist [post]
func (h *ChecklistHandler) CreateItem(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	item, err := h.checklistService.CreateItem(userID, weddingID, services.ChecklistInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreate, services.ResourceChecklistItem, item.ID, c.ClientIP(),
		map[string]interface{}{"title": item.Title, "position": item.Position})

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetChecklist handles listing the checklist.
// @Summary     Get checklist
// @Description Get a paginated checklist ordered by position
// @Tags        checklist
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wedding ID"
// @Param       done      query bool   false "Filter by completion"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "Sort key (position, due_date, title, created_at); prefix with - for descending"
// @Success     200 {object} pagination.PageResponse[models.ChecklistItem] "Paginated checklist"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist [get]
func (h *ChecklistHandler) GetChecklist(c *gin.Context) {
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

	done, err := parseOptionalBool(c, "done")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.checklistService.GetWeddingChecklist(userID, weddingID, page, done)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetItemByID handles retrieving a single checklist item.
// @Summary     Get checklist item
// @Description Get a single checklist item
// @Tags        checklist
// @Produce     json
// @Security    BearerAuth
// @Param       id     path string true "Wedding ID"
// @Param       itemId path string true "Checklist item ID"
// @Success     200 {object} models.ChecklistItem "Checklist item"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist/{itemId} [get]
func (h *ChecklistHandler) GetItemByID(c *gin.Context) {
	userID, weddingID, itemID, err := itemScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.checklistService.GetItemByID(userID, weddingID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem handles updating a checklist item.
// @Summary     Update checklist item
// @Description Update the provided fields of a checklist item
// @Tags        checklist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Wedding ID"
// @Param       itemId  path string                     true "Checklist item ID"
// @Param       request body UpdateChecklistItemRequest true "Updated fields"
// @Success     200 {object} models.ChecklistItem "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist/{itemId} [put]
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	userID, weddingID, itemID, err := itemScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	item, err := h.checklistService.UpdateItem(userID, weddingID, itemID, services.ChecklistInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceChecklistItem, item.ID, c.ClientIP(),
		map[string]interface{}{"title": item.Title})

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles deleting a checklist item.
// @Summary     Delete checklist item
// @Description Delete a checklist item
// @Tags        checklist
// @Produce     json
// @Security    BearerAuth
// @Param       id     path string true "Wedding ID"
// @Param       itemId path string true "Checklist item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist/{itemId} [delete]
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	userID, weddingID, itemID, err := itemScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.checklistService.DeleteItem(userID, weddingID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDelete, services.ResourceChecklistItem, itemID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Checklist item deleted successfully"})
}

// ToggleItem flips the completion state of a checklist item.
// @Summary     Toggle checklist item
// @Description Mark a checklist item done, or undone if it already was
// @Tags        checklist
// @Produce     json
// @Security    BearerAuth
// @Param       id     path string true "Wedding ID"
// @Param       itemId path string true "Checklist item ID"
// @Success     200 {object} models.ChecklistItem "Toggled item"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding or item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/checklist/{itemId}/toggle [post]
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	userID, weddingID, itemID, err := itemScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.checklistService.ToggleItem(userID, weddingID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceChecklistItem, item.ID, c.ClientIP(),
		map[string]interface{}{"done": item.Done})

	c.JSON(http.StatusOK, gin.H{"item": item})
}
