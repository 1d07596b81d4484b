package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/server/middleware"
	"github.com/nutritrack/nutritrack/internal/service/mealplan"
)

// MealPlanHandler handles the meal plan HTTP surface.
type MealPlanHandler struct {
	svc    *mealplan.Service
	logger *zap.Logger
}

// NewMealPlanHandler constructs the HTTP handler adapter.
func NewMealPlanHandler(svc *mealplan.Service, logger *zap.Logger) *MealPlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanHandler{svc: svc, logger: logger}
}

type mealPlanRequest struct {
	Date        string `json:"date" binding:"required"`
	MealType    string `json:"mealType" binding:"required"`
	RecipeName  string `json:"recipeName" binding:"required"`
	ServingSize int    `json:"servingSize" binding:"omitempty,min=1"`
}

// Create plans a meal for a date.
func (h *MealPlanHandler) Create(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid meal plan payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ServingSize == 0 {
		req.ServingSize = 1
	}

	plan, err := h.svc.Create(c.Request.Context(), middleware.Owner(c), mealplan.CreateInput{
		Date:        req.Date,
		MealType:    req.MealType,
		RecipeName:  req.RecipeName,
		ServingSize: req.ServingSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListByDate returns all of the owner's entries for one calendar day.
func (h *MealPlanHandler) ListByDate(c *gin.Context) {
	plans, err := h.svc.GetByDate(c.Request.Context(), middleware.Owner(c), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// List returns every entry belonging to the owner.
func (h *MealPlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetByID returns a single entry.
func (h *MealPlanHandler) GetByID(c *gin.Context) {
	plan, err := h.svc.GetByID(c.Request.Context(), middleware.Owner(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Update replaces the editable fields of an entry.
func (h *MealPlanHandler) Update(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid meal plan payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ServingSize == 0 {
		req.ServingSize = 1
	}

	plan, err := h.svc.Update(c.Request.Context(), middleware.Owner(c), c.Param("id"), mealplan.UpdateInput{
		Date:        req.Date,
		MealType:    req.MealType,
		RecipeName:  req.RecipeName,
		ServingSize: req.ServingSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Delete removes an entry, reversing its stats contribution if consumed.
func (h *MealPlanHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.Owner(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}
