package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
	"wedplan/internal/services"
)

// BudgetHandler handles budget settings and summary requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpdateBudgetSettingsRequest represents the request payload for saving budget settings.
// TargetMode accepts the canonical value or the Hebrew label.
type UpdateBudgetSettingsRequest struct {
	GuestsMin      int              `json:"guests_min" binding:"min=0"`
	GuestsMax      int              `json:"guests_max" binding:"min=0,gtefield=GuestsMin"`
	GuestsExact    *int             `json:"guests_exact" binding:"omitempty,min=0"`
	GiftAverage    decimal.Decimal  `json:"gift_average" swaggertype:"string"`
	SavePercent    float64          `json:"save_percent" binding:"required,min=5,max=30"`
	TargetMode     string           `json:"target_mode" binding:"required,target_mode"`
	PersonalPocket *decimal.Decimal `json:"personal_pocket" swaggertype:"string"`
}

// GetSettings returns the wedding's budget settings.
// @Summary     Get budget settings
// @Description Get the budget settings of a wedding. Defaults are returned when none were saved.
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {object} models.BudgetSettings "Budget settings"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/budget/settings [get]
func (h *BudgetHandler) GetSettings(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.budgetService.GetSettings(userID, weddingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings saves the wedding's budget settings.
// @Summary     Update budget settings
// @Description Replace the budget settings of a wedding
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                      true "Wedding ID"
// @Param       request body UpdateBudgetSettingsRequest true "Budget settings"
// @Success     200 {object} models.BudgetSettings "Saved settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/budget/settings [put]
func (h *BudgetHandler) UpdateSettings(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	settings, err := h.budgetService.UpdateSettings(userID, weddingID, services.BudgetSettingsInput{
		GuestsMin:      req.GuestsMin,
		GuestsMax:      req.GuestsMax,
		GuestsExact:    req.GuestsExact,
		GiftAverage:    req.GiftAverage,
		SavePercent:    req.SavePercent,
		TargetMode:     budget.TargetMode(req.TargetMode),
		PersonalPocket: req.PersonalPocket,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdate, services.ResourceBudgetSettings, settings.ID, c.ClientIP(),
		map[string]interface{}{
			"guests_min":   settings.GuestsMin,
			"guests_max":   settings.GuestsMax,
			"gift_average": settings.GiftAverage.String(),
			"save_percent": settings.SavePercent,
			"target_mode":  settings.TargetMode,
		})

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSummary returns the computed budget summary.
// @Summary     Get budget summary
// @Description Compute expected income, spending targets and committed vendor totals for a wedding
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wedding ID"
// @Success     200 {object} budget.Summary "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid wedding ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wedding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /weddings/{id}/budget/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	userID, weddingID, err := weddingScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetSummary(userID, weddingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
