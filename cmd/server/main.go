package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/repository/mongodb"
	"github.com/nutritrack/nutritrack/internal/scheduler"
	"github.com/nutritrack/nutritrack/internal/server/handlers"
	"github.com/nutritrack/nutritrack/internal/server/router"
	catalogsvc "github.com/nutritrack/nutritrack/internal/service/catalog"
	mealplansvc "github.com/nutritrack/nutritrack/internal/service/mealplan"
	statssvc "github.com/nutritrack/nutritrack/internal/service/stats"
	"github.com/nutritrack/nutritrack/pkg/clients/spoonacular"
	"github.com/nutritrack/nutritrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	mealPlanRepo := mongodb.NewMealPlanRepo(mongoClient)
	statsRepo := mongodb.NewStatsRepo(mongoClient)
	recipeRepo := mongodb.NewRecipeRepo(mongoClient)

	mealPlanSvc := mealplansvc.NewService(mealPlanRepo, recipeRepo, statsRepo, baseLogger.Named("svc.mealplan"))
	statsSvc := statssvc.NewService(statsRepo, mealPlanRepo, baseLogger.Named("svc.stats"))

	// Recipe import is optional; without an API key the catalog only holds
	// recipes created through other channels.
	var catalogSvc *catalogsvc.Service
	if cfg.Spoonacular.APIKey != "" {
		spoonClient := spoonacular.NewClient(cfg.Spoonacular)
		catalogSvc = catalogsvc.NewService(recipeRepo, spoonClient, cfg.Import.BatchSize, baseLogger.Named("svc.catalog"))
		baseLogger.Info("spoonacular recipe import enabled")
	} else {
		baseLogger.Warn("spoonacular api key missing, recipe import disabled")
	}

	engine := router.New(router.Handlers{
		MealPlans: handlers.NewMealPlanHandler(mealPlanSvc, baseLogger.Named("handlers.mealplan")),
		Stats:     handlers.NewStatsHandler(statsSvc, baseLogger.Named("handlers.stats")),
		Goal:      handlers.NewGoalHandler(),
		Recipes:   handlers.NewRecipeHandler(catalogSvc, baseLogger.Named("handlers.recipes")),
	}, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	if catalogSvc != nil {
		sched := scheduler.NewScheduler(cfg.Import, catalogSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
