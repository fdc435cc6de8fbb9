package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/skymesh-core/internal/auth"
	"github.com/Ponloe/skymesh-core/internal/config"
	"github.com/Ponloe/skymesh-core/internal/database"
	"github.com/Ponloe/skymesh-core/internal/openweather"
	"github.com/Ponloe/skymesh-core/internal/users"
	"github.com/Ponloe/skymesh-core/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, &users.User{}, &weather.Weather{}); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	userRepo := users.NewRepository(db)
	weatherRepo := weather.NewRepository(db)
	fetcher := openweather.NewFetcher(openweather.NewClient(
		openweather.NewConfig(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)))

	authHandler := auth.NewHandler(userRepo, issuer)
	weatherHandler := weather.NewHandler(weatherRepo, fetcher)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)

	// Protected routes
	r.GET("/me", auth.RequireAuth(issuer), authHandler.Me)

	w := r.Group("/weather", auth.RequireAuth(issuer))
	w.GET("", weatherHandler.List)
	w.GET("/:city", weatherHandler.GetByCity)
	w.POST("", weatherHandler.Create)
	w.PUT("/:city", weatherHandler.Update)
	w.DELETE("/:city", weatherHandler.Delete)

	r.Run(":" + cfg.Port)
}
