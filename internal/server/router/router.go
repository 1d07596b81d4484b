package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/server/handlers"
	"github.com/nutritrack/nutritrack/internal/server/middleware"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	MealPlans *handlers.MealPlanHandler
	Stats     *handlers.StatsHandler
	Goal      *handlers.GoalHandler
	Recipes   *handlers.RecipeHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Auth(jwtSecret))

	mealPlans := api.Group("/mealplans")
	mealPlans.POST("", h.MealPlans.Create)
	mealPlans.GET("", h.MealPlans.List)
	mealPlans.GET("/date/:date", h.MealPlans.ListByDate)
	mealPlans.GET("/:id", h.MealPlans.GetByID)
	mealPlans.PUT("/:id", h.MealPlans.Update)
	mealPlans.DELETE("/:id", h.MealPlans.Delete)

	stats := api.Group("/stats")
	stats.GET("/daily/:date", h.Stats.GetDaily)
	stats.PUT("/daily/:date", h.Stats.UpdateDaily)
	stats.POST("/log-consumption", h.Stats.LogConsumption)
	stats.POST("/water", h.Stats.AddWater)
	stats.GET("/historical", h.Stats.History)
	stats.GET("/calorie-goal", h.Goal.CalorieGoal)

	api.POST("/recipes/import", middleware.RequireAdmin(), h.Recipes.ImportNow)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(middleware.CtxRequestID)),
			zap.String("client_ip", c.ClientIP()))
	}
}
