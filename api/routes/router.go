// api/routes/router.go
package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stampcard/docs"
	"stampcard/internal/announce"
	"stampcard/internal/attendees"
	"stampcard/internal/auth"
	"stampcard/internal/booths"
	"stampcard/internal/draws"
	"stampcard/internal/notifications"
	"stampcard/internal/roster"
	"stampcard/internal/shared/config"
	"stampcard/internal/shared/database"
	"stampcard/internal/shared/middleware"
	"stampcard/internal/teams"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	log       *logger.Logger

	cache       cache.Service
	boothSvc    booths.Service
	teamSvc     teams.Service
	attendeeSvc attendees.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.cache = cache.NewService(r.db.GetRedisClient())

	adminOnly := middleware.AdminOnly(r.config)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Booths and teams must come first: cards depend on both
		if err := r.setupBoothRoutes(api, adminOnly); err != nil {
			return err
		}
		if err := r.setupTeamRoutes(api, adminOnly); err != nil {
			return err
		}
		r.setupCardRoutes(api, adminOnly)

		if err := r.setupDrawRoutes(api, adminOnly); err != nil {
			return err
		}
	}
	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		components := r.db.Health(c.Request.Context())
		code, status := http.StatusOK, "healthy"
		for _, state := range components {
			if state != "ok" {
				code, status = http.StatusServiceUnavailable, "unhealthy"
			}
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
			"timestamp":  time.Now(),
			"service":    "stampcard-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"min_stamps":  r.config.Draw.MinStamps,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures admin authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.config)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

// setupBoothRoutes loads the booth catalog
func (r *Router) setupBoothRoutes(rg *gin.RouterGroup, adminOnly []gin.HandlerFunc) error {
	catalog, err := booths.LoadCatalog(r.config.BoothsFile)
	if err != nil {
		return fmt.Errorf("failed to load booth catalog: %w", err)
	}

	boothService, err := booths.NewService(catalog)
	if err != nil {
		return fmt.Errorf("invalid booth catalog: %w", err)
	}
	r.boothSvc = boothService

	booths.SetupBoothRoutes(rg, booths.NewController(boothService), adminOnly...)
	r.log.Info("Booth catalog loaded", "booths", boothService.Count())
	return nil
}

// setupTeamRoutes configures team management and seeds the default list
func (r *Router) setupTeamRoutes(rg *gin.RouterGroup, adminOnly []gin.HandlerFunc) error {
	teamRepo := teams.NewRepository(r.db.GetPostgreSQL())
	teamService := teams.NewService(teamRepo, r.cache, r.log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := teamService.SeedDefaults(ctx, r.config.Draw.DefaultTeams); err != nil {
		return fmt.Errorf("failed to seed default teams: %w", err)
	}
	r.teamSvc = teamService

	teams.SetupTeamRoutes(rg, teams.NewController(teamService), adminOnly...)
	return nil
}

// setupCardRoutes configures attendee stamp card routes
func (r *Router) setupCardRoutes(rg *gin.RouterGroup, adminOnly []gin.HandlerFunc) {
	cardRepo := attendees.NewRepository(r.db.GetPostgreSQL())
	r.attendeeSvc = attendees.NewService(cardRepo, r.boothSvc, r.teamSvc, r.cache, r.config.Draw.MinStamps, r.log)

	attendees.SetupCardRoutes(rg, attendees.NewController(r.attendeeSvc), adminOnly...)
}

// setupDrawRoutes configures the lucky draw panel
func (r *Router) setupDrawRoutes(rg *gin.RouterGroup, adminOnly []gin.HandlerFunc) error {
	drawer, err := roster.NewDrawer()
	if err != nil {
		return fmt.Errorf("failed to seed draw RNG: %w", err)
	}

	var generator announce.Generator
	if r.config.Announce.GeminiAPIKey != "" {
		generator = announce.NewGeminiClient(announce.GeminiConfig{
			APIKey:   r.config.Announce.GeminiAPIKey,
			Model:    r.config.Announce.GeminiModel,
			Endpoint: r.config.Announce.GeminiEndpoint,
		})
	} else {
		r.log.Warn("GEMINI_API_KEY not set, winner announcements use the static text")
	}
	announcer := announce.NewService(generator, r.config.Announce.Timeout, r.log)

	store := draws.NewSessionStore(r.cache, r.config.Redis.SessionTTL, r.config.Redis.DrawLockTTL, r.log)
	drawService := draws.NewService(
		store,
		draws.NewRepository(r.db.GetPostgreSQL()),
		drawer,
		announcer,
		r.publisher,
		r.attendeeSvc,
		r.cache,
		draws.Options{
			MinStamps:          r.config.Draw.MinStamps,
			DefaultWinnerCount: r.config.Draw.DefaultWinnerCount,
		},
		r.log,
	)

	draws.SetupDrawRoutes(rg, draws.NewController(drawService), adminOnly...)
	return nil
}
