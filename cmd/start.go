package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"elternaccounts/core/loader"
	"elternaccounts/core/logger"
	"elternaccounts/core/middleware/auth"
	"elternaccounts/core/middleware/rayid"
	"elternaccounts/feature/accounts"
	"elternaccounts/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "elternaccounts/docs/swagger"
)

// @title Elternaccounts API
// @version 1.0
// @description API for reconciling parent registrations against the school registry.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration and Logger
		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Metrics registry
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		// 3. Storage, Ledger (optional) and Engine
		deps, db, err := a.accountsDeps(cmd.Context(), reg)
		if err != nil {
			logg.Fatal("Failed to initialize accounts", zap.Error(err))
		}
		if deps.Ledger != nil {
			logg.Info("Run ledger enabled", zap.String("driver", a.cfg.Database.Driver))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(accounts.NewFeature(deps))
		mgr.Register(integrity.NewFeature(deps.Client, deps.Bucket, a.cfg.Accounts, logg, db))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API, scrapers need no key)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/metrics"}}))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		// 6. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
