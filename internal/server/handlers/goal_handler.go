package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
	"github.com/nutritrack/nutritrack/internal/domain/nutrition"
)

// GoalHandler serves the daily calorie goal computation.
type GoalHandler struct{}

// NewGoalHandler constructs the HTTP handler adapter.
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// CalorieGoal computes the Mifflin-St Jeor daily target from query params.
// The formula itself is pure; all input validation happens here.
func (h *GoalHandler) CalorieGoal(c *gin.Context) {
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil {
		respondError(c, apperr.Invalidf("age must be an integer"))
		return
	}
	height, err := strconv.ParseFloat(c.Query("height"), 64)
	if err != nil {
		respondError(c, apperr.Invalidf("height must be a number"))
		return
	}
	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil {
		respondError(c, apperr.Invalidf("weight must be a number"))
		return
	}
	sex, err := nutrition.ParseSex(c.Query("sex"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := nutrition.ValidateBiometrics(age, height, weight); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calorieGoal": nutrition.CalorieGoal(age, height, weight, sex)})
}
