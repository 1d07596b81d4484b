package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/service/catalog"
)

// RecipeHandler exposes the admin-only on-demand recipe import.
type RecipeHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewRecipeHandler constructs the HTTP handler adapter. svc may be nil when
// the import integration is disabled.
func NewRecipeHandler(svc *catalog.Service, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{svc: svc, logger: logger}
}

// ImportNow triggers the Spoonacular import immediately.
func (h *RecipeHandler) ImportNow(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe import is not configured"})
		return
	}

	stored, err := h.svc.ImportRecipes(c.Request.Context())
	if err != nil {
		h.logger.Error("manual recipe import failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipes fetched and stored", "stored": stored})
}
