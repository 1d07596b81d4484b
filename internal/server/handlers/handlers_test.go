package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nutritrack/nutritrack/internal/domain/apperr"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(apperr.Invalidf("bad date")))
	assert.Equal(t, http.StatusNotFound, statusFor(apperr.NotFoundf("meal plan x")))
	assert.Equal(t, http.StatusConflict, statusFor(apperr.Conflictf("already consumed")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("connection reset")))
}

func goalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/calorie-goal", NewGoalHandler().CalorieGoal)
	return r
}

func TestCalorieGoal_OK(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/calorie-goal?age=30&height=180&weight=80&sex=male", nil)
	goalRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// round((10*80 + 6.25*180 - 5*30 + 5) * 1.2) = 2136
	assert.JSONEq(t, `{"calorieGoal": 2136}`, w.Body.String())
}

func TestCalorieGoal_BadInput(t *testing.T) {
	cases := []string{
		"/calorie-goal?age=abc&height=180&weight=80&sex=male",
		"/calorie-goal?age=30&height=180&weight=80&sex=unknown",
		"/calorie-goal?age=30&height=-5&weight=80&sex=female",
		"/calorie-goal?age=30&weight=80&sex=male",
	}

	for _, path := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		goalRouter().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
