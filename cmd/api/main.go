package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/config"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/handlers"
	"github.com/ApenasAngelo/AirbnDB-backend/internal/monitor"
)

const apiVersion = "1.0.0"

func main() {
	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	// Connect to MySQL. A failed connection is not fatal: the API keeps
	// serving the root and health endpoints so the failure is visible.
	db, err := database.New(cfg.Database)
	if err != nil {
		log.Printf("Warning: database unavailable: %v", err)
		db = nil
	} else {
		defer db.Close()
		log.Printf("Connected to MySQL at %s:%d/%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}

	// Periodic health probe feeding /health
	mon := monitor.New(db)
	mon.Start()
	defer mon.Stop()

	handlers.RegisterValidations()

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.OriginList(),
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", rootBanner)
	r.GET("/health", healthCheck(mon))

	if db != nil {
		gormDB := db.Gorm()
		listings := handlers.NewListingsHandler(gormDB)
		properties := handlers.NewPropertiesHandler(gormDB)
		hosts := handlers.NewHostsHandler(gormDB)
		stats := handlers.NewStatsHandler(gormDB)
		heatmap := handlers.NewHeatmapHandler(gormDB)

		api := r.Group("/api")
		{
			api.GET("/listings/search", listings.Search)
			api.GET("/listings/best-deals", listings.BestDeals)

			api.GET("/properties/trending", properties.Trending)
			api.GET("/properties/:id/amenities", properties.Amenities)
			api.GET("/properties/:id/availability", properties.Availability)
			api.GET("/properties/:id/reviews", properties.Reviews)

			api.GET("/hosts/ranking", hosts.Ranking)
			api.GET("/hosts/:id/profile", hosts.Profile)
			api.GET("/hosts/:id/properties", hosts.Properties)

			api.GET("/neighborhoods/stats", stats.Neighborhoods)
			api.GET("/stats/overview", stats.Overview)

			api.GET("/heatmap/density", heatmap.Density)
			api.GET("/heatmap/price", heatmap.Price)
		}
	} else {
		log.Println("Database routes disabled until a connection is available")
	}

	addr := cfg.API.Addr()
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func rootBanner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AirbnDB API - Airbnb Rio de Janeiro analytics",
		"version": apiVersion,
		"status":  "running",
	})
}

func healthCheck(mon *monitor.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := mon.Status()
		code := http.StatusOK
		overall := "ok"
		if !mon.Healthy() {
			code = http.StatusServiceUnavailable
			overall = "degraded"
		}
		body := gin.H{
			"status":     overall,
			"database":   status.Database,
			"checked_at": status.CheckedAt,
		}
		if status.Error != "" {
			body["error"] = status.Error
		}
		c.JSON(code, body)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
