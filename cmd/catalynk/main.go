package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohamedO6/catalynk/internal/config"
	"github.com/MohamedO6/catalynk/internal/database"
	"github.com/MohamedO6/catalynk/internal/handlers"
	"github.com/MohamedO6/catalynk/internal/identity"
	"github.com/MohamedO6/catalynk/internal/navigation"
	"github.com/MohamedO6/catalynk/internal/services"
	"github.com/MohamedO6/catalynk/internal/session"
	"github.com/MohamedO6/catalynk/pkg/logger"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
)

// shellRouter records navigation decisions for the app shell, which
// polls /api/v1/navigation rather than receiving pushes.
type shellRouter struct {
	log zerolog.Logger
}

func (r *shellRouter) Replace(path string) {
	r.log.Info().Str("route", path).Msg("navigation")
}

func (r *shellRouter) Back() {}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	gateway := identity.NewGateway(cfg.Provider, cfg.RefreshMargin, log)
	defer gateway.Close()

	profileService := services.NewProfileService(db)

	store := session.NewStore(gateway, profileService, log)
	defer store.Close()

	dispatcher := navigation.NewDispatcher(store, &shellRouter{log: log}, cfg.FallbackDelay, log)
	go dispatcher.Run(ctx)

	store.Start(ctx)

	authHandler := handlers.NewAuthHandler(cfg, gateway, dispatcher)
	sessionHandler := handlers.NewSessionHandler(store, profileService, dispatcher)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/signout", sessionHandler.SignOut)
	auth.Post("/recover", authHandler.Recover)
	auth.Post("/password", authHandler.UpdatePassword)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)

	api.Get("/session", sessionHandler.GetSession)
	api.Get("/navigation", sessionHandler.GetNavigation)
	api.Post("/profile/role", sessionHandler.SelectRole)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	// OAuth redirect target, outside the API prefix so providers can be
	// configured with a short callback URL.
	app.Get("/auth/callback", authHandler.Callback)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("sidecar starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
}
