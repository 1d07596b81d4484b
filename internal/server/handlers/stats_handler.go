package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/server/middleware"
	"github.com/nutritrack/nutritrack/internal/service/stats"
)

// StatsHandler handles the daily stats and consumption HTTP surface.
type StatsHandler struct {
	svc    *stats.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc *stats.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// GetDaily returns (and lazily creates) the stats row for a date.
func (h *StatsHandler) GetDaily(c *gin.Context) {
	row, err := h.svc.Get(c.Request.Context(), middleware.Owner(c), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type updateStatsRequest struct {
	TotalCalories *float64 `json:"totalCalories"`
	WaterIntake   *float64 `json:"waterIntake"`
}

// UpdateDaily overwrites the supplied totals. Manual correction path.
func (h *StatsHandler) UpdateDaily(c *gin.Context) {
	var req updateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stats payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	row, err := h.svc.Update(c.Request.Context(), middleware.Owner(c), c.Param("date"), stats.UpdateInput{
		TotalCalories: req.TotalCalories,
		WaterIntake:   req.WaterIntake,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "daily stats updated", "stats": row})
}

type logConsumptionRequest struct {
	MealPlanID       string  `json:"mealPlanId" binding:"required"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	WaterConsumed    float64 `json:"waterConsumed"`
}

// LogConsumption marks a planned meal consumed and folds its calories into
// the day's totals.
func (h *StatsHandler) LogConsumption(c *gin.Context) {
	var req logConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consumption payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	row, err := h.svc.LogConsumption(c.Request.Context(), middleware.Owner(c), req.MealPlanID, req.CaloriesConsumed, req.WaterConsumed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal consumption logged", "stats": row})
}

type addWaterRequest struct {
	Date   string  `json:"date" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// AddWater adds milliliters to a date's water total.
func (h *StatsHandler) AddWater(c *gin.Context) {
	var req addWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid water payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and water amount are required"})
		return
	}

	row, err := h.svc.AddWater(c.Request.Context(), middleware.Owner(c), req.Date, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "water intake updated", "stats": row})
}

// History returns the stats rows for an inclusive date range.
func (h *StatsHandler) History(c *gin.Context) {
	rows, err := h.svc.History(c.Request.Context(), middleware.Owner(c), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
